package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ravenerp/journey-sync/internal/sync"
)

func addSync(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "sync <trip-id>",
		Short: "Push a trip to the ERP, uploading its photos first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			syncer := sync.NewSyncer(env.Store, env.API, env.Logger)

			trip, err := syncer.Sync(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			ok := color.New(color.FgGreen)
			_, _ = ok.Fprintf(env.Out, "synchronized %q as %s (%d stops)\n", trip.Titulo, trip.ERPID, trip.StopCount())

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "import <erp-id>",
		Short: "Fetch a trip from the ERP and store it read-only",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importer := sync.NewImporter(env.Store, env.API, env.Logger)

			trip, err := importer.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(env.Out, "imported %q as %s (%d stops, read only)\n", trip.Titulo, trip.ID, trip.StopCount())

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addRefresh(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "refresh <trip-id>",
		Short: "Re-pull an imported trip from the ERP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importer := sync.NewImporter(env.Store, env.API, env.Logger)

			trip, err := importer.Refresh(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(env.Out, "refreshed %q from ERP trip %s\n", trip.Titulo, trip.ERPID)

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
