package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addWipe(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Erase every trip, the profile and the server settings",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			// Irreversible, so the user confirms twice.
			if !confirm(env, "erase ALL local data on this device?") {
				fmt.Fprintln(env.Out, "cancelled")

				return nil
			}

			if !confirm(env, "this cannot be undone, are you sure?") {
				fmt.Fprintln(env.Out, "cancelled")

				return nil
			}

			if err := env.Store.ClearAll(); err != nil {
				return err
			}

			fmt.Fprintln(env.Out, "all local data erased")

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
