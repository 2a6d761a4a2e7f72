package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ravenerp/journey-sync/internal/budget"
	apperrors "github.com/ravenerp/journey-sync/internal/errors"
	"github.com/ravenerp/journey-sync/internal/itinerary"
	"github.com/ravenerp/journey-sync/internal/model"
)

func addTrip(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Create, inspect and reshape a single trip",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	addTripCreate(cmd, env)
	addTripShow(cmd, env)
	addTripResize(cmd, env)
	addTripDelete(cmd, env)

	topLevel.AddCommand(cmd)
}

func addTripCreate(topLevel *cobra.Command, env *Env) {
	var (
		title       string
		budgetTotal float64
		start       string
		days        int
		accentColor string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a trip with empty itinerary days",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if title == "" {
				// Empty titles silently block the save.
				return nil
			}

			now := env.Now()

			startDate := now
			if start != "" {
				parsed, err := time.Parse(model.DateLayout, start)
				if err != nil {
					return fmt.Errorf("parsing start date: %w", err)
				}

				startDate = parsed
			}

			trip := model.Trip{
				ID:          model.NewLocalID(now),
				Titulo:      title,
				ColorAcento: accentColor,
				Presupuesto: budgetTotal,
				FechaInicio: startDate.Format(model.DateLayout),
				Itinerario:  itinerary.Resize(days, startDate, nil),
			}

			if err := env.Store.UpsertTrip(trip); err != nil {
				return err
			}

			fmt.Fprintf(env.Out, "created trip %s (%d days)\n", trip.ID, len(trip.Itinerario))

			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "trip title (required)")
	cmd.Flags().Float64VarP(&budgetTotal, "budget", "b", 0, "total budget, 0 means no limit")
	cmd.Flags().StringVarP(&start, "start", "s", "", "start date (YYYY-MM-DD), defaults to today")
	cmd.Flags().IntVarP(&days, "days", "d", 1, "trip duration in days")
	cmd.Flags().StringVar(&accentColor, "color", model.DefaultAccentColor, "accent color")

	topLevel.AddCommand(cmd)
}

func addTripShow(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "show <trip-id>",
		Short: "Print a trip's itinerary and budget summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			trip, err := env.Store.GetTrip(args[0])
			if err != nil {
				return err
			}

			printTrip(env, *trip)

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func printTrip(env *Env, trip model.Trip) {
	title := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint)

	_, _ = title.Fprintln(env.Out, trip.Titulo)

	if trip.ReadOnly {
		_, _ = faint.Fprintf(env.Out, "imported from ERP (%s), read only", trip.ERPID)

		if trip.Propietario != "" {
			_, _ = faint.Fprintf(env.Out, ", by %s", trip.Propietario)
		}

		fmt.Fprintln(env.Out)
	}

	sum := budget.Summarize(trip)
	_, _ = severityColor(sum.Severity).Fprintf(env.Out, "spent %.2f of %.2f (%.0f%%)\n", sum.Total, sum.Budget, sum.Percentage)

	if trip.UltimaSync != "" {
		_, _ = faint.Fprintf(env.Out, "last sync %s\n", trip.UltimaSync)
	}

	for _, day := range trip.Itinerario {
		fmt.Fprintf(env.Out, "\nDay %d  %s  (%.2f)\n", day.Dia, day.Fecha, budget.DayCost(day))

		if len(day.Puntos) == 0 {
			_, _ = faint.Fprintln(env.Out, "  no stops")

			continue
		}

		for _, p := range day.Puntos {
			mark := " "
			if p.Completado {
				mark = "x"
			}

			fmt.Fprintf(env.Out, "  [%s] %s  %s  %.2f  (%s)\n", mark, p.Hora, p.Lugar, p.Costo, p.ID)
		}
	}

	for _, n := range trip.NotasERP {
		fmt.Fprintf(env.Out, "\n[%s] %s: %s\n", n.TipoNota, n.Titulo, n.Contenido)
	}
}

func addTripResize(topLevel *cobra.Command, env *Env) {
	var days int

	cmd := &cobra.Command{
		Use:   "resize <trip-id>",
		Short: "Change a trip's duration, confirming before days are dropped",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			trip, err := env.Store.GetTrip(args[0])
			if err != nil {
				return err
			}

			if trip.ReadOnly {
				return fmt.Errorf("trip %q: %w", trip.ID, apperrors.ErrReadOnlyTrip)
			}

			// A trip always keeps at least one day.
			if days < 1 {
				days = 1
			}

			if days < len(trip.Itinerario) {
				dropped := 0
				for _, day := range trip.Itinerario[days:] {
					dropped += len(day.Puntos)
				}

				prompt := fmt.Sprintf("shrinking to %d day(s) discards %d day(s) and %d stop(s), continue?",
					days, len(trip.Itinerario)-days, dropped)
				if !confirm(env, prompt) {
					fmt.Fprintln(env.Out, "cancelled")

					return nil
				}
			}

			startDate, err := time.Parse(model.DateLayout, trip.FechaInicio)
			if err != nil {
				return fmt.Errorf("parsing trip start date: %w", err)
			}

			trip.Itinerario = itinerary.Resize(days, startDate, trip.Itinerario)

			if err := env.Store.UpsertTrip(*trip); err != nil {
				return err
			}

			fmt.Fprintf(env.Out, "trip %s now spans %d days\n", trip.ID, len(trip.Itinerario))

			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 1, "new duration in days")
	_ = cmd.MarkFlagRequired("days")

	topLevel.AddCommand(cmd)
}

func addTripDelete(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "delete <trip-id>",
		Short: "Delete a trip from this device",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			trip, err := env.Store.GetTrip(args[0])
			if err != nil {
				return err
			}

			if !confirm(env, fmt.Sprintf("delete %q and all its stops?", trip.Titulo)) {
				fmt.Fprintln(env.Out, "cancelled")

				return nil
			}

			if err := env.Store.DeleteTrip(trip.ID); err != nil {
				return err
			}

			fmt.Fprintf(env.Out, "deleted trip %s\n", trip.ID)

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
