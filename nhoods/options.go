// SPDX-License-Identifier: MIT

// Package nhoods: functional configuration for the neighbourhood transforms.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors (panic on nonsensical values),
//   - gatherOptions, which resolves the effective configuration.
//
// Notes:
//   - Options are read-only once gathered; transforms never mutate them.
//   - Workers bounds the errgroup fan-out of Adjacency and the sparse
//     aggregation path; results never depend on it.
package nhoods

import (
	"runtime"

	"github.com/katalvlaran/milo/logging"
)

// ---------- Defaults ----------

const (
	// DefaultAssay is the assay aggregated by CalcExpression.
	DefaultAssay = "logcounts"

	// DefaultOverlap keeps any pair of neighbourhoods sharing at least one cell.
	DefaultOverlap = 1

	// DefaultEmptyPolicy rejects neighbourhoods with no member cells.
	DefaultEmptyPolicy = EmptyError
)

// EmptyPolicy decides what happens when a neighbourhood has zero member cells
// and its mean would divide by zero.
type EmptyPolicy int

const (
	// EmptyError fails with ErrEmptyNeighbourhood.
	EmptyError EmptyPolicy = iota
	// EmptyNaN fills the neighbourhood's column with NaN.
	EmptyNaN
)

// String names the policy.
func (p EmptyPolicy) String() string {
	if p == EmptyNaN {
		return "nan"
	}

	return "error"
}

// ---------- Internal panic messages ----------

const (
	panicAssayEmpty     = "nhoods: WithAssay: name must be non-empty"
	panicWorkersInvalid = "nhoods: WithWorkers: n must be >= 1"
	panicLoggerNil      = "nhoods: WithLogger: logger must be non-nil"
	panicPolicyInvalid  = "nhoods: WithEmptyPolicy: unknown policy"
)

// ---------- Public option type ----------

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	assay   string
	subset  *Subset
	empty   EmptyPolicy
	logger  *logging.Logger
	workers int
}

// WithAssay selects the assay CalcExpression aggregates, and names the
// primary assay of the Experiment built by CalcExpressionMatrix.
// Panics if name is empty.
func WithAssay(name string) Option {
	if name == "" {
		panic(panicAssayEmpty)
	}

	return func(o *Options) { o.assay = name }
}

// WithSubset restricts aggregation to the selected feature rows.
func WithSubset(s Subset) Option {
	return func(o *Options) { o.subset = &s }
}

// WithEmptyPolicy chooses how empty neighbourhoods are handled.
// Panics on a value outside EmptyError/EmptyNaN.
func WithEmptyPolicy(p EmptyPolicy) Option {
	if p != EmptyError && p != EmptyNaN {
		panic(panicPolicyInvalid)
	}

	return func(o *Options) { o.empty = p }
}

// WithLogger routes Debug records to l. Panics on nil.
func WithLogger(l *logging.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *Options) { o.logger = l }
}

// WithWorkers bounds internal parallelism. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{
		assay:   DefaultAssay,
		empty:   DefaultEmptyPolicy,
		logger:  logging.Noop(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
