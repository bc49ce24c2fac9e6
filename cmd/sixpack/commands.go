// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/sixpack"
	"github.com/katalvlaran/sixpack/features"
	"github.com/katalvlaran/sixpack/persistence"
)

var (
	errBadFormat = errors.New("unknown output format")
	errBadSort   = errors.New("unknown sort order")
	errBadBar    = errors.New("bar of interest must be \"birth,death\"")
)

// barOut is the serialized form of a bar.
type barOut struct {
	Dim   int     `yaml:"dim"`
	Birth float64 `yaml:"birth"`
	Death float64 `yaml:"death"`
}

func (app *cli) load(path string) (*sixpack.Complex, error) {
	in, err := loadInput(path)
	if err != nil {
		return nil, err
	}

	return in.build(app.logger, app.parallel)
}

func (app *cli) barsCmd() *cobra.Command {
	var (
		modules    []string
		dim        int
		onlyFinite bool
		format     string
	)
	cmd := &cobra.Command{
		Use:   "bars [file]",
		Short: "Print the bars of one or more persistence modules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := parseModules(modules)
			if err != nil {
				return err
			}
			c, err := app.load(args[0])
			if err != nil {
				return err
			}
			sp, err := c.Compute(cmd.Context())
			if err != nil {
				return err
			}

			var opts []persistence.BarOption
			if dim >= 0 {
				opts = append(opts, persistence.Dim(dim))
			}
			if onlyFinite {
				opts = append(opts, persistence.OnlyFinite())
			}
			result := make(map[persistence.ModuleName][]persistence.Bar, len(names))
			for _, name := range names {
				if result[name], err = sp.Bars(name, opts...); err != nil {
					return err
				}
			}

			return writeBars(cmd.OutOrStdout(), format, names, result)
		},
	}
	cmd.Flags().StringSliceVarP(&modules, "module", "m", nil, "modules to print (default: all six)")
	cmd.Flags().IntVarP(&dim, "dim", "d", -1, "only bars of this dimension (-1: all)")
	cmd.Flags().BoolVar(&onlyFinite, "only-finite", false, "drop essential bars")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or yaml")

	return cmd
}

func (app *cli) pairsCmd() *cobra.Command {
	var (
		module string
		dim    int
		sortBy string
		bar    string
	)
	cmd := &cobra.Command{
		Use:   "pairs [file]",
		Short: "Rank the finite persistence pairs of a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := persistence.ParseModule(module)
			if err != nil {
				return err
			}
			order, err := parseSort(sortBy, bar)
			if err != nil {
				return err
			}
			c, err := app.load(args[0])
			if err != nil {
				return err
			}
			if _, err = c.Compute(cmd.Context()); err != nil {
				return err
			}
			pairs, err := c.PersistencePairs(name, dim, order)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range pairs {
				fmt.Fprintf(out, "%v\t%v\t%g\t%g\n", p.Pair.Birth, p.Pair.Death, p.Birth, p.Death)
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&module, "module", "m", string(persistence.Complex), "module to inspect")
	cmd.Flags().IntVarP(&dim, "dim", "d", 0, "dimension of the pairs")
	cmd.Flags().StringVar(&sortBy, "sort", "persistence", "sort order: persistence or proximity")
	cmd.Flags().StringVar(&bar, "bar", "", "bar of interest \"birth,death\" for --sort proximity")

	return cmd
}

func (app *cli) normCmd() *cobra.Command {
	var (
		module string
		dim    int
	)
	cmd := &cobra.Command{
		Use:   "norm [file]",
		Short: "Print the total length of the finite bars of a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := persistence.ParseModule(module)
			if err != nil {
				return err
			}
			c, err := app.load(args[0])
			if err != nil {
				return err
			}
			if _, err = c.Compute(cmd.Context()); err != nil {
				return err
			}
			norm, err := c.FiniteOneNorm(name, dim)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%g\n", norm)

			return nil
		},
	}
	cmd.Flags().StringVarP(&module, "module", "m", string(persistence.Complex), "module to measure")
	cmd.Flags().IntVarP(&dim, "dim", "d", 0, "dimension")

	return cmd
}

func parseModules(raw []string) ([]persistence.ModuleName, error) {
	if len(raw) == 0 {
		return persistence.Modules(), nil
	}
	out := make([]persistence.ModuleName, 0, len(raw))
	for _, r := range raw {
		name, err := persistence.ParseModule(r)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
	}

	return out, nil
}

func parseSort(sortBy, bar string) (features.SortBy, error) {
	switch sortBy {
	case "persistence":
		return features.ByPersistence(), nil
	case "proximity":
		parts := strings.Split(bar, ",")
		if len(parts) != 2 {
			return features.SortBy{}, errBadBar
		}
		birth, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return features.SortBy{}, fmt.Errorf("%w: %w", errBadBar, err)
		}
		death, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return features.SortBy{}, fmt.Errorf("%w: %w", errBadBar, err)
		}
		return features.ByProximity(birth, death), nil
	}

	return features.SortBy{}, fmt.Errorf("%w: %q", errBadSort, sortBy)
}

func writeBars(w io.Writer, format string, names []persistence.ModuleName, bars map[persistence.ModuleName][]persistence.Bar) error {
	switch format {
	case "text":
		for _, name := range names {
			for _, b := range bars[name] {
				if _, err := fmt.Fprintf(w, "%s\t%d\t%g\t%g\n", name, b.Dim, b.Birth, b.Death); err != nil {
					return err
				}
			}
		}
		return nil
	case "yaml":
		doc := make(map[string][]barOut, len(names))
		for _, name := range names {
			list := make([]barOut, 0, len(bars[name]))
			for _, b := range bars[name] {
				list = append(list, barOut(b))
			}
			doc[string(name)] = list
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}

	return fmt.Errorf("%w: %q", errBadFormat, format)
}
