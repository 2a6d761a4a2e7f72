package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func addCategories(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the stop categories the ERP accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats, err := env.API.Categories(cmd.Context())
			if err != nil {
				return err
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("KEY", "NAME", "ICON")

			for _, c := range cats {
				tbl.AddRow(c.CveCatVJ, c.Nombre, c.Icon)
			}

			fmt.Fprintln(env.Out, tbl)

			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

// resolveCategory matches a user-typed key against the catalog,
// ignoring case. An empty key means no category.
func resolveCategory(ctx context.Context, env *Env, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	cats, err := env.API.Categories(ctx)
	if err != nil {
		return "", err
	}

	for _, c := range cats {
		if strings.EqualFold(c.CveCatVJ, key) {
			return c.CveCatVJ, nil
		}
	}

	return "", fmt.Errorf("unknown category %q, run `journey categories` for the list", key)
}
