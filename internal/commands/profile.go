package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func addProfile(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change the device profile and ERP identity",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			printProfile(env)

			return nil
		},
	}

	addProfileSet(cmd, env)
	addProfileLink(cmd, env)
	addProfileUnlink(cmd, env)

	topLevel.AddCommand(cmd)
}

func printProfile(env *Env) {
	profile := env.Store.Profile()
	faint := color.New(color.Faint)

	name := profile.Name
	if name == "" {
		name = "(unnamed)"
	}

	fmt.Fprintf(env.Out, "%s  currency %s\n", name, profile.Currency)
	fmt.Fprintf(env.Out, "haptics %v, notifications %v\n", profile.Settings.Haptics, profile.Settings.Notifications)

	if emp := env.Store.Employee(); emp != nil {
		fmt.Fprintf(env.Out, "linked to %s (%s)\n", emp.Descri, emp.CveEmple)
	} else {
		_, _ = faint.Fprintln(env.Out, "not linked to an ERP employee; run: journey profile link <clave>")
	}
}

func addProfileSet(topLevel *cobra.Command, env *Env) {
	var (
		name     string
		currency string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile := env.Store.Profile()

			if cmd.Flags().Changed("name") {
				profile.Name = name
			}

			if cmd.Flags().Changed("currency") {
				profile.Currency = currency
			}

			if err := env.Store.SetProfile(profile); err != nil {
				return err
			}

			printProfile(env)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&currency, "currency", "c", "", "currency code shown next to costs")

	topLevel.AddCommand(cmd)
}

func addProfileLink(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "link <clave>",
		Short: "Link this device to an ERP employee, verifying the key first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emp, err := env.API.Employee(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if err := env.Store.SetEmployee(emp); err != nil {
				return err
			}

			fmt.Fprintf(env.Out, "linked to %s (%s)\n", emp.Descri, emp.CveEmple)

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addProfileUnlink(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "unlink",
		Short: "Forget the linked ERP employee",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := env.Store.ClearEmployee(); err != nil {
				return err
			}

			fmt.Fprintln(env.Out, "unlinked")

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
