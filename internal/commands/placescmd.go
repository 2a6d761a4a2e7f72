package commands

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func addPlaces(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "places <query>...",
		Short: "Search the geocoder for a place name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			results, err := env.Searcher.Search(cmd.Context(), query)
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(env.Out, "no places found")

				return nil
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.MaxColWidth = 60
			tbl.AddRow("PLACE", "LAT", "LON")

			for _, p := range results {
				tbl.AddRow(p.DisplayName, fmt.Sprintf("%.5f", p.Lat), fmt.Sprintf("%.5f", p.Lon))
			}

			fmt.Fprintln(env.Out, tbl)

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
