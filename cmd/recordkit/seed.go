package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/recordkit/internal/seed"
)

func newSeedCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load data types and records from a YAML file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if path == "" {
				path = a.cfg.Seed.Path
			}
			if path == "" {
				return fmt.Errorf("no seed file: pass --file or set seed.path")
			}

			res, err := applySeed(cmd, a, path)
			fmt.Fprintf(cmd.OutOrStdout(), "types created: %d, skipped: %d, records: %d\n",
				res.TypesCreated, res.TypesSkipped, res.Records)
			return err
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "seed file (default: seed.path from config)")
	return cmd
}

func applySeed(cmd *cobra.Command, a *app, path string) (seed.Result, error) {
	file, err := seed.Load(path)
	if err != nil {
		return seed.Result{}, err
	}
	res, err := seed.New(a.types, a.recRepo, a.logger).Apply(cmd.Context(), file)
	if err != nil {
		return res, fmt.Errorf("seed %s: %w", path, err)
	}
	return res, nil
}
