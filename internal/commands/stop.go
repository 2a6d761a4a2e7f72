package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/ravenerp/journey-sync/internal/errors"
	"github.com/ravenerp/journey-sync/internal/itinerary"
	"github.com/ravenerp/journey-sync/internal/model"
)

func addStop(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Manage the stops of a trip's itinerary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	addStopAdd(cmd, env)
	addStopEdit(cmd, env)
	addStopDone(cmd, env)
	addStopDelete(cmd, env)

	topLevel.AddCommand(cmd)
}

// editableTrip loads a trip and rejects read-only records.
func editableTrip(env *Env, tripID string) (*model.Trip, error) {
	trip, err := env.Store.GetTrip(tripID)
	if err != nil {
		return nil, err
	}

	if trip.ReadOnly {
		return nil, fmt.Errorf("trip %q: %w", trip.ID, apperrors.ErrReadOnlyTrip)
	}

	return trip, nil
}

func addStopAdd(topLevel *cobra.Command, env *Env) {
	var editor itinerary.EditorState

	cmd := &cobra.Command{
		Use:   "add <trip-id>",
		Short: "Add a stop to one day of a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trip, err := editableTrip(env, args[0])
			if err != nil {
				return err
			}

			categoria, err := resolveCategory(cmd.Context(), env, editor.Categoria)
			if err != nil {
				return err
			}

			editor.Categoria = categoria

			now := env.Now()
			stop := editor.Stop(func() string { return model.NewLocalID(now) })

			days, ok := itinerary.AddStop(trip.Itinerario, editor.Dia, stop)
			if !ok {
				// Blank place names and unknown days block the save.
				return nil
			}

			trip.Itinerario = days

			if err := env.Store.UpsertTrip(*trip); err != nil {
				return err
			}

			fmt.Fprintf(env.Out, "added stop %s to day %d\n", stop.ID, editor.Dia)

			return nil
		},
	}

	cmd.Flags().IntVarP(&editor.Dia, "day", "d", 1, "day number the stop belongs to")
	cmd.Flags().StringVarP(&editor.Lugar, "place", "p", "", "place name (required)")
	cmd.Flags().StringVar(&editor.Hora, "time", "", `scheduled time "HH:MM"`)
	cmd.Flags().StringVarP(&editor.Costo, "cost", "c", "", "stop cost")
	cmd.Flags().StringVar(&editor.Descripcion, "description", "", "free-text description")
	cmd.Flags().StringVar(&editor.Categoria, "category", "", "ERP category key, list them with 'journey categories'")
	cmd.Flags().BoolVar(&editor.Facturable, "billable", false, "mark the cost as billable")
	cmd.Flags().StringSliceVar(&editor.Fotos, "photo", nil, "photo file or URL, repeatable")

	topLevel.AddCommand(cmd)
}

func addStopEdit(topLevel *cobra.Command, env *Env) {
	var (
		lugar       string
		hora        string
		costo       float64
		descripcion string
	)

	cmd := &cobra.Command{
		Use:   "edit <trip-id> <stop-id>",
		Short: "Edit a stop in place",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			trip, err := editableTrip(env, args[0])
			if err != nil {
				return err
			}

			days, ok := itinerary.UpdateStop(trip.Itinerario, args[1], lugar, hora, descripcion, costo)
			if !ok {
				if di, _ := trip.FindStop(args[1]); di < 0 {
					return fmt.Errorf("stop %q: %w", args[1], apperrors.ErrStopNotFound)
				}

				// A blank place name blocks the save.
				return nil
			}

			trip.Itinerario = days

			if err := env.Store.UpsertTrip(*trip); err != nil {
				return err
			}

			fmt.Fprintf(env.Out, "updated stop %s\n", args[1])

			return nil
		},
	}

	cmd.Flags().StringVarP(&lugar, "place", "p", "", "place name (required)")
	cmd.Flags().StringVar(&hora, "time", "", `scheduled time "HH:MM", empty keeps the current one`)
	cmd.Flags().Float64VarP(&costo, "cost", "c", 0, "stop cost")
	cmd.Flags().StringVar(&descripcion, "description", "", "free-text description")

	topLevel.AddCommand(cmd)
}

func addStopDone(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "done <trip-id> <stop-id>",
		Short: "Toggle a stop's completed flag",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			trip, err := editableTrip(env, args[0])
			if err != nil {
				return err
			}

			days, ok := itinerary.ToggleStop(trip.Itinerario, args[1])
			if !ok {
				return fmt.Errorf("stop %q: %w", args[1], apperrors.ErrStopNotFound)
			}

			trip.Itinerario = days

			if err := env.Store.UpsertTrip(*trip); err != nil {
				return err
			}

			state := "pending"
			if di, si := trip.FindStop(args[1]); di >= 0 && bool(trip.Itinerario[di].Puntos[si].Completado) {
				state = "done"
			}

			fmt.Fprintf(env.Out, "stop %s marked %s\n", args[1], state)

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addStopDelete(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "delete <trip-id> <stop-id>",
		Short: "Remove a stop from a trip",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			trip, err := editableTrip(env, args[0])
			if err != nil {
				return err
			}

			di, si := trip.FindStop(args[1])
			if di < 0 {
				return fmt.Errorf("stop %q: %w", args[1], apperrors.ErrStopNotFound)
			}

			lugar := trip.Itinerario[di].Puntos[si].Lugar
			if !confirm(env, fmt.Sprintf("delete stop %q?", lugar)) {
				fmt.Fprintln(env.Out, "cancelled")

				return nil
			}

			days, _ := itinerary.DeleteStop(trip.Itinerario, args[1])
			trip.Itinerario = days

			if err := env.Store.UpsertTrip(*trip); err != nil {
				return err
			}

			fmt.Fprintf(env.Out, "deleted stop %s\n", args[1])

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
