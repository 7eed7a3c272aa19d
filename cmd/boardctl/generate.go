package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/boardlens/internal/adapters/dataset"
	"github.com/okian/boardlens/internal/domain/model"
	"github.com/okian/boardlens/internal/gamegen"
)

func newGenerateCmd() *cobra.Command {
	var (
		count           int
		seed            uint64
		placeholderRate float64
		unknownAgeRate  float64
		output          string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic dataset",
		Long: `Write a reproducible synthetic dataset. Equal seeds give equal output.
Without --output the dataset is written to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			games, err := gamegen.Generate(cmd.Context(),
				gamegen.WithCount(count),
				gamegen.WithSeed(seed),
				gamegen.WithPlaceholderRate(placeholderRate),
				gamegen.WithUnknownAgeRate(unknownAgeRate),
			)
			if err != nil {
				return err
			}

			if output == "" {
				return dataset.Encode(cmd.OutOrStdout(), games)
			}
			return writeFile(output, games)
		},
	}
	cmd.Flags().IntVar(&count, "count", 200, "number of games")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().Float64Var(&placeholderRate, "placeholder-rate", 0.05, "share of games with one non-numeric field")
	cmd.Flags().Float64Var(&unknownAgeRate, "unknown-age-rate", 0.02, "share of games without a minimum age")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func writeFile(path string, games []model.Game) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := dataset.Encode(f, games); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}
