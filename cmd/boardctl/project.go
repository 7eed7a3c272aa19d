package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/boardlens/internal/domain/filter"
	"github.com/okian/boardlens/internal/domain/palette"
	"github.com/okian/boardlens/internal/domain/projection"
)

func newProjectCmd(opts *rootOptions) *cobra.Command {
	var categories []string
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project games of the selected categories onto two discriminant axes",
		Long: `Project games whose first category is selected onto the two axes that
best separate the categories. At least two categories and two eligible
games are required; otherwise the command fails with insufficient data.
Ages play no part in the projection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			games, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			f := filter.New(nil, false, categories)
			res, err := projection.Project(games, f, projection.WithColors(palette.NewScatter()))
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().StringSliceVar(&categories, "category", nil, "selected category, in label order (repeatable)")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}
