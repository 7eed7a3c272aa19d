// Package main implements boardctl, a CLI that runs the chart pipelines
// over a dataset file without starting the server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/boardlens/internal/adapters/dataset"
	"github.com/okian/boardlens/internal/domain/model"
)

// version information
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options shared by every subcommand.
type rootOptions struct {
	datasetPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "boardctl",
		Short: "Inspect board game datasets from the command line",
		Long: `boardctl runs the category and projection pipelines over a dataset file
and prints the result as JSON.

Examples:
  # List ages and categories
  boardctl facets --dataset data/boardgames.json

  # Top categories for games playable from age 8 or 10
  boardctl categories --age 8 --age 10

  # Project two categories
  boardctl project --category Fantasy --category Economic

  # Write a synthetic dataset
  boardctl generate --count 500 --seed 7 --output data/boardgames.json`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.datasetPath, "dataset", "data/boardgames.json", "path to the dataset JSON file")

	root.AddCommand(newFacetsCmd(opts))
	root.AddCommand(newCategoriesCmd(opts))
	root.AddCommand(newProjectCmd(opts))
	root.AddCommand(newGenerateCmd())
	return root
}

func (o *rootOptions) load(ctx context.Context) ([]model.Game, error) {
	games, err := dataset.Load(ctx, o.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return games, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
