// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/sixpack"
	"github.com/katalvlaran/sixpack/floatcmp"
	"github.com/katalvlaran/sixpack/simplex"
)

var (
	errNoSimplices      = errors.New("input: no simplices or weights given")
	errTwoSubComplexes  = errors.New("input: sub_complex and total_sub_complex are mutually exclusive")
	errBadWeightKey     = errors.New("input: bad weight key")
	errBadSimplexInList = errors.New("input: bad simplex")
)

// input is the description file read by every command. JSON is accepted too,
// being a subset of YAML.
type input struct {
	Simplices       [][]int             `yaml:"simplices"`
	Weights         map[string]float64  `yaml:"weights"`
	DefaultWeight   float64             `yaml:"default_weight"`
	SubComplex      [][]int             `yaml:"sub_complex"`
	TotalSubComplex []int               `yaml:"total_sub_complex"`
	Tolerance       *floatcmp.Tolerance `yaml:"tolerance"`
}

func loadInput(path string) (*input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return parseInput(data)
}

func parseInput(data []byte) (*input, error) {
	var in input
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	if len(in.Simplices) == 0 && len(in.Weights) == 0 {
		return nil, errNoSimplices
	}
	if in.SubComplex != nil && in.TotalSubComplex != nil {
		return nil, errTwoSubComplexes
	}
	if in.Tolerance != nil {
		if err := in.Tolerance.Validate(); err != nil {
			return nil, err
		}
	}

	return &in, nil
}

// build turns the description into a facade complex.
func (in *input) build(logger *zap.Logger, parallel bool) (*sixpack.Complex, error) {
	generators, err := simplices(in.Simplices)
	if err != nil {
		return nil, err
	}
	weights := make(map[simplex.Simplex]float64, len(in.Weights))
	for key, w := range in.Weights {
		s, err := simplex.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", errBadWeightKey, key, err)
		}
		weights[s] = w
		generators = append(generators, s)
	}

	opts := []sixpack.Option{sixpack.WithLogger(logger)}
	if in.Tolerance != nil {
		opts = append(opts, sixpack.WithTolerance(*in.Tolerance))
	}
	if parallel {
		opts = append(opts, sixpack.WithParallel())
	}
	c, err := sixpack.FromSimplexList(generators, opts...)
	if err != nil {
		return nil, err
	}
	if len(weights) > 0 || in.DefaultWeight != 0 {
		if _, err = c.SetWeights(weights, in.DefaultWeight); err != nil {
			return nil, err
		}
	}

	switch {
	case in.TotalSubComplex != nil:
		c.SetTotalSubComplex(in.TotalSubComplex)
	case in.SubComplex != nil:
		sub, err := simplices(in.SubComplex)
		if err != nil {
			return nil, err
		}
		if err = c.SetSubComplex(sub); err != nil {
			return nil, err
		}
	}
	logger.Debug("complex loaded",
		zap.Int("simplices", c.Model().Len()),
		zap.Int("dimension", c.Model().Dimension()),
		zap.Int("sub_complex", len(c.Model().SubComplexSimplices())))

	return c, nil
}

func simplices(lists [][]int) ([]simplex.Simplex, error) {
	out := make([]simplex.Simplex, 0, len(lists))
	for _, vs := range lists {
		s, err := simplex.New(vs...)
		if err != nil {
			return nil, fmt.Errorf("%w %v: %w", errBadSimplexInList, vs, err)
		}
		out = append(out, s)
	}

	return out, nil
}
