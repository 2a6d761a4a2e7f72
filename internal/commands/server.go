package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ravenerp/journey-sync/internal/config"
)

func addServer(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Configure and probe the ERP server address",
		RunE: func(*cobra.Command, []string) error {
			url := env.Store.ServerURL()
			if url == "" {
				url = env.Config.ServerURL
			}

			if url == "" {
				fmt.Fprintln(env.Out, "no server configured; run: journey server set <url>")

				return nil
			}

			fmt.Fprintln(env.Out, url)

			return nil
		},
	}

	addServerSet(cmd, env)
	addServerTest(cmd, env)

	topLevel.AddCommand(cmd)
}

func addServerSet(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "set <url>",
		Short: "Store the ERP server address on this device",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			url := config.NormalizeServerURL(args[0])

			if err := config.ValidateServerURL(url); err != nil {
				return err
			}

			if err := env.Store.SetServerURL(url); err != nil {
				return err
			}

			fmt.Fprintf(env.Out, "server set to %s\n", url)

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addServerTest(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Probe the configured server's health endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := env.API.Health(cmd.Context()); err != nil {
				return err
			}

			ok := color.New(color.FgGreen)
			_, _ = ok.Fprintln(env.Out, "server is reachable")

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
