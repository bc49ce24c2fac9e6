// SPDX-License-Identifier: MIT

// Command sixpack reads a filtered simplicial complex with a sub-complex from
// a YAML or JSON file and prints its six-pack of persistence diagrams.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// cli holds the global flags and the logger shared by all subcommands.
type cli struct {
	verbose  bool
	parallel bool
	logger   *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	app := &cli{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "sixpack",
		Short: "Six-pack persistent homology of a simplicial pair",
		Long: `sixpack computes persistence diagrams of a filtered simplicial complex K
and a sub-complex L: complex, sub_complex, image, kernel, cokernel and relative.

The input file lists generating simplices, optional weights and the
sub-complex:

  simplices: [[0, 1, 2], [2, 3]]
  weights: {"0,1,2": 1.0}
  default_weight: 0
  sub_complex: [[0, 1], [1, 2], [0, 2]]
  tolerance: {rel: 1.0e-5, abs: 1.0e-8}`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if app.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			app.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = app.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "log reductions and repairs at debug level")
	root.PersistentFlags().BoolVar(&app.parallel, "parallel", false, "run independent reductions concurrently")

	root.AddCommand(app.barsCmd(), app.pairsCmd(), app.normCmd())

	return root
}
