// Package solver turns parsed equations into roots: polynomial equations go
// through companion-matrix eigenvalues, everything else through a seeded
// Newton grid search, and every candidate passes a residual verifier before
// it is reported.
package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/selamgh/mcp-equation-solver/internal/symbol"
)

// ErrVariableCount rejects input with zero or several unknowns.
var ErrVariableCount = errors.New("equation must contain exactly one variable")

// ErrEmptySystem rejects a linear solve with no equations.
var ErrEmptySystem = errors.New("linear system must contain at least one equation")

// Form is the classification outcome. A polynomial equation carries its
// coefficients; anything else solves numerically.
type Form interface{ isForm() }

// Polynomial holds coefficients highest degree first, len == degree+1.
type Polynomial struct{ Coeffs []float64 }

// General marks an equation with no finite polynomial decomposition.
type General struct{}

func (Polynomial) isForm() {}
func (General) isForm()    {}

// Equation is the classified form of one input expression, built fresh per
// solve call.
type Equation struct {
	Raw        string
	Normalized string
	Expr       symbol.Expr
	Variable   string
	Form       Form
}

// Options bound the numeric search.
type Options struct {
	GridSize      int     // Newton seeds per solve
	RangeMin      float64 // seed interval start
	RangeMax      float64 // seed interval end
	Tolerance     float64 // Newton step convergence
	MaxIterations int     // per-seed iteration budget
	VerifyTol     float64 // residual acceptance
	DedupTol      float64 // absolute distance between distinct roots
}

func DefaultOptions() Options {
	return Options{
		GridSize:      50,
		RangeMin:      0.1,
		RangeMax:      10,
		Tolerance:     1e-8,
		MaxIterations: 1000,
		VerifyTol:     1e-6,
		DedupTol:      1e-5,
	}
}

// Solver carries the search options. It holds no per-equation state, so one
// instance serves concurrent calls.
type Solver struct {
	opts Options
}

// New clamps out-of-range options to usable values and returns a solver.
func New(opts Options) *Solver {
	def := DefaultOptions()
	if opts.GridSize <= 0 {
		opts.GridSize = def.GridSize
	}
	if opts.RangeMax <= opts.RangeMin {
		opts.RangeMin, opts.RangeMax = def.RangeMin, def.RangeMax
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = def.Tolerance
	} else if opts.Tolerance < 1e-15 {
		opts.Tolerance = 1e-15
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = def.MaxIterations
	} else if opts.MaxIterations > 10000 {
		opts.MaxIterations = 10000
	}
	if opts.VerifyTol <= 0 {
		opts.VerifyTol = def.VerifyTol
	}
	if opts.DedupTol <= 0 {
		opts.DedupTol = def.DedupTol
	}
	return &Solver{opts: opts}
}

// Classify normalizes and parses raw input, requires exactly one free
// variable, and attempts the polynomial decomposition. A failed decomposition
// is the General branch, not an error.
func (s *Solver) Classify(ctx context.Context, raw string) (*Equation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized := symbol.Normalize(raw)
	expr, err := symbol.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", raw, err)
	}

	free := symbol.FreeSymbols(expr)
	if len(free) != 1 {
		return nil, ErrVariableCount
	}
	var variable string
	for name := range free {
		variable = name
	}

	eq := &Equation{
		Raw:        raw,
		Normalized: normalized,
		Expr:       expr,
		Variable:   variable,
	}
	if coeffs, ok := symbol.Coefficients(expr, variable); ok {
		eq.Form = Polynomial{Coeffs: coeffs}
	} else {
		eq.Form = General{}
	}
	return eq, nil
}
