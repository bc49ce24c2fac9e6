// SPDX-License-Identifier: MIT

// Package floatcmp centralizes floating-point comparison for filtration
// weights. Every closeness decision in the module (trivial bars, weight
// ties in the filtration order, monotonicity repair) goes through a single
// Tolerance value so that results stay deterministic.
//
// Closeness follows the familiar relative/absolute rule
//
//	|a - b| <= Abs + Rel*|b|
//
// with equal infinities treated as close and NaN close to nothing.
package floatcmp

import (
	"errors"
	"fmt"
	"math"
)

// Defaults mirror the usual isclose conventions.
const (
	// DefaultRel is the default relative tolerance.
	DefaultRel = 1e-5

	// DefaultAbs is the default absolute tolerance.
	DefaultAbs = 1e-8
)

// ErrBadTolerance is returned by Validate for negative or non-finite tolerances.
var ErrBadTolerance = errors.New("floatcmp: tolerance must be finite and non-negative")

// Tolerance is a relative/absolute closeness policy. The zero value means
// exact comparison.
type Tolerance struct {
	Rel float64 `yaml:"rel" json:"rel"`
	Abs float64 `yaml:"abs" json:"abs"`
}

// Default is the tolerance used when none is configured.
var Default = Tolerance{Rel: DefaultRel, Abs: DefaultAbs}

// Exact compares with ==.
var Exact = Tolerance{}

// Validate reports ErrBadTolerance when either component is negative, NaN or infinite.
func (t Tolerance) Validate() error {
	for _, v := range [...]float64{t.Rel, t.Abs} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: rel=%g abs=%g", ErrBadTolerance, t.Rel, t.Abs)
		}
	}

	return nil
}

// Close reports whether a and b are equal within the tolerance.
func (t Tolerance) Close(a, b float64) bool {
	if a == b {
		return true
	}
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}

	return math.Abs(a-b) <= t.Abs+t.Rel*math.Abs(b)
}

// Less reports whether a is smaller than b by more than the tolerance.
func (t Tolerance) Less(a, b float64) bool {
	return a < b && !t.Close(a, b)
}

// LessOrClose reports a <= b up to the tolerance.
func (t Tolerance) LessOrClose(a, b float64) bool {
	return a <= b || t.Close(a, b)
}

// EnsureSmallerOrEqual returns value when it is strictly below the minimum
// of others and not close to it; otherwise it returns that minimum. With no
// others the minimum is +Inf and value is returned unchanged.
//
// A value that is merely close to the minimum is snapped onto it, so that
// near-equal weights of a face and its coface become exactly equal.
func (t Tolerance) EnsureSmallerOrEqual(value float64, others ...float64) float64 {
	minimum := math.Inf(1)
	for _, o := range others {
		if o < minimum {
			minimum = o
		}
	}
	if value > minimum || (value != minimum && t.Close(value, minimum)) {
		return minimum
	}

	return value
}

// IsTrivialBar reports whether a bar is born and dies at (nearly) the same value.
func (t Tolerance) IsTrivialBar(birth, death float64) bool {
	return t.Close(birth, death)
}
