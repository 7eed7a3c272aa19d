package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/boardlens/internal/domain/aggregate"
	"github.com/okian/boardlens/internal/domain/catalog"
	"github.com/okian/boardlens/internal/domain/filter"
	"github.com/okian/boardlens/internal/domain/palette"
)

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	var (
		ages       []int
		unknownAge bool
		limit      int
	)
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Print the most common categories among games passing the age filter",
		Long: `Print the most common categories among games passing the age filter.
Without --age every age present in the dataset is accepted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			games, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("age") {
				ages = catalog.Compute(games).Ages
			}
			f := filter.New(ages, unknownAge, nil)
			res := aggregate.Aggregate(games, f,
				aggregate.WithLimit(limit),
				aggregate.WithColors(palette.NewPie()),
			)
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().IntSliceVar(&ages, "age", nil, "accepted minimum age (repeatable)")
	cmd.Flags().BoolVar(&unknownAge, "unknown-age", false, "accept games without a minimum age")
	cmd.Flags().IntVar(&limit, "limit", aggregate.DefaultLimit, "number of categories to keep")
	return cmd
}
