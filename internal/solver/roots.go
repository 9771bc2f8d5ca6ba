package solver

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/selamgh/mcp-equation-solver/internal/symbol"
)

// FindRoots locates the roots of eq. Polynomial equations yield every root,
// real and complex, from the companion matrix. General equations are searched
// with Newton iterations seeded over the configured range; only real roots
// can come out of that branch.
func (s *Solver) FindRoots(ctx context.Context, eq *Equation) ([]complex128, error) {
	switch form := eq.Form.(type) {
	case Polynomial:
		return polynomialRoots(form.Coeffs), nil
	case General:
		return s.gridSearch(ctx, eq)
	}
	return nil, fmt.Errorf("unclassified equation %q", eq.Raw)
}

// polynomialRoots returns the eigenvalues of the companion matrix of the
// monic form of coeffs (highest degree first). Degree 0 has no roots.
func polynomialRoots(coeffs []float64) []complex128 {
	// Drop leading zeros so the companion matrix is well formed.
	i := 0
	for i < len(coeffs)-1 && coeffs[i] == 0 {
		i++
	}
	coeffs = coeffs[i:]
	n := len(coeffs) - 1
	if n < 1 || coeffs[0] == 0 {
		return nil
	}

	c := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		c.Set(0, j, -coeffs[j+1]/coeffs[0])
	}
	for r := 1; r < n; r++ {
		c.Set(r, r-1, 1)
	}

	var eig mat.Eigen
	if !eig.Factorize(c, mat.EigenNone) {
		return nil
	}
	return eig.Values(nil)
}

// gridSearch runs Newton from evenly spaced seeds and keeps the distinct
// converged roots in seed order. Seed failures are expected and skipped.
func (s *Solver) gridSearch(ctx context.Context, eq *Equation) ([]complex128, error) {
	deriv := eq.Expr.Diff(eq.Variable).Simplify()
	seeds := linspace(s.opts.RangeMin, s.opts.RangeMax, s.opts.GridSize)

	var roots []complex128
	for _, seed := range seeds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := s.newton(eq.Expr, deriv, eq.Variable, seed)
		if err != nil {
			continue
		}
		if !hasNearbyRoot(roots, r, s.opts.DedupTol) {
			roots = append(roots, complex(r, 0))
		}
	}
	return roots, nil
}

// newton iterates x' = x - f(x)/f'(x) from seed. Every failure mode is an
// error: domain violations, a vanishing derivative, and running out of
// iterations.
func (s *Solver) newton(f, df symbol.Expr, varName string, seed float64) (float64, error) {
	vars := map[string]float64{}
	x := seed
	for i := 0; i < s.opts.MaxIterations; i++ {
		vars[varName] = x
		fx, err := symbol.EvalReal(f, vars)
		if err != nil {
			return 0, err
		}
		if !isFinite(fx) {
			return 0, fmt.Errorf("function undefined at %v", x)
		}
		dfx, err := symbol.EvalReal(df, vars)
		if err != nil {
			return 0, err
		}
		if !isFinite(dfx) {
			return 0, fmt.Errorf("derivative undefined at %v", x)
		}
		if math.Abs(dfx) < 1e-14 {
			return 0, fmt.Errorf("derivative vanishes at %v", x)
		}
		next := x - fx/dfx
		if math.Abs(next-x) < s.opts.Tolerance {
			return next, nil
		}
		x = next
	}
	return 0, fmt.Errorf("no convergence from seed %v", seed)
}

func linspace(min, max float64, n int) []float64 {
	if n == 1 {
		return []float64{min}
	}
	out := make([]float64, n)
	step := (max - min) / float64(n-1)
	for i := range out {
		out[i] = min + float64(i)*step
	}
	return out
}

// hasNearbyRoot reports whether candidate lies within atol of an accepted
// root. First-seen wins.
func hasNearbyRoot(roots []complex128, candidate, atol float64) bool {
	for _, r := range roots {
		if math.Abs(real(r)-candidate) < atol {
			return true
		}
	}
	return false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
