// SPDX-License-Identifier: MIT

package persistence

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/sixpack/simplex"
)

// Sentinel errors for the persistence package.
var (
	// ErrNilComplex indicates that Compute received a nil complex.
	ErrNilComplex = errors.New("persistence: complex is nil")

	// ErrUnknownModule indicates a module name outside the six-pack.
	ErrUnknownModule = errors.New("persistence: unknown persistence module")
)

const panicNilLogger = "persistence: WithLogger: logger must be non-nil"

// ModuleName names one of the six persistence modules.
type ModuleName string

// The six-pack.
const (
	Complex    ModuleName = "complex"
	SubComplex ModuleName = "sub_complex"
	Image      ModuleName = "image"
	Kernel     ModuleName = "kernel"
	Cokernel   ModuleName = "cokernel"
	Relative   ModuleName = "relative"
)

// Modules lists the six-pack in its conventional order.
func Modules() []ModuleName {
	return []ModuleName{Kernel, SubComplex, Image, Complex, Cokernel, Relative}
}

// ParseModule converts a module name, returning ErrUnknownModule for
// anything that is not one of the six.
func ParseModule(name string) (ModuleName, error) {
	m := ModuleName(strings.TrimSpace(name))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownModule, name)
	}

	return m, nil
}

// Valid reports whether m is one of the six modules.
func (m ModuleName) Valid() bool {
	switch m {
	case Complex, SubComplex, Image, Kernel, Cokernel, Relative:
		return true
	}

	return false
}

// String returns the module name.
func (m ModuleName) String() string { return string(m) }

// Pair is a persistence pair: the class born with Birth dies with Death.
type Pair struct {
	Birth simplex.Simplex
	Death simplex.Simplex
}

// Module is the birth/death bookkeeping of one persistence module.
// All slices are in filtration (Primary) order; Pairs by death, then birth.
//
// Essential = Birth minus the births of Pairs, and Death holds exactly the
// deaths of Pairs.
type Module struct {
	Name      ModuleName
	Birth     []simplex.Simplex
	Death     []simplex.Simplex
	Essential []simplex.Simplex
	Pairs     []Pair
}

// Options configures Compute.
type Options struct {
	Parallel bool        // run independent reductions concurrently
	Logger   *zap.Logger // nil means the complex's logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns sequential execution with the complex's logger.
func DefaultOptions() Options {
	return Options{}
}

// WithParallel runs independent reductions concurrently.
func WithParallel() Option {
	return func(o *Options) { o.Parallel = true }
}

// WithLogger overrides the logger inherited from the complex.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(o *Options) { o.Logger = l }
}
