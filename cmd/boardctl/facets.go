package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/boardlens/internal/domain/catalog"
)

func newFacetsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "List the ages and categories of a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			games, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, catalog.Compute(games))
		},
	}
}
