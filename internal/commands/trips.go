package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/ravenerp/journey-sync/internal/budget"
)

func addTrips(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "trips",
		Short: "List every trip with its budget health",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			trips := env.Store.LoadTrips()
			if len(trips) == 0 {
				faint := color.New(color.Faint, color.Italic)
				_, _ = faint.Fprintln(env.Out, "no trips yet, create one with: journey trip create")

				return nil
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("ID", "TITLE", "START", "DAYS", "SPENT", "BUDGET", "STATE")

			for _, t := range trips {
				sum := budget.Summarize(t)

				state := "local"
				if t.ReadOnly {
					state = "imported"
				} else if t.Sincronizado {
					state = "synced"
				}

				tbl.AddRow(
					t.ID,
					t.Titulo,
					t.FechaInicio,
					len(t.Itinerario),
					severityColor(sum.Severity).Sprintf("%.2f (%.0f%%)", sum.Total, sum.Percentage),
					fmt.Sprintf("%.2f", t.Presupuesto),
					state,
				)
			}

			fmt.Fprintln(env.Out, tbl)

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func severityColor(s budget.Severity) *color.Color {
	switch s {
	case budget.Critical:
		return color.New(color.FgRed, color.Bold)
	case budget.Warning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}
