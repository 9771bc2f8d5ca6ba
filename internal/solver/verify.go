package solver

import (
	"math"
	"math/cmplx"

	"github.com/selamgh/mcp-equation-solver/internal/symbol"
)

// boundaryCandidates maps inverse and reciprocal trigonometric functions to
// the edge-of-domain values Newton grids habitually miss. Candidates pass
// through the same residual check as ordinary roots.
var boundaryCandidates = []struct {
	fn     string
	values []float64
}{
	{"acos", []float64{1, -1}},
	{"asin", []float64{0, 1, -1}},
	{"cot", []float64{0, math.Inf(1), math.Inf(-1)}},
	{"acot", []float64{0, math.Inf(1), math.Inf(-1)}},
	{"atan", []float64{0}},
}

// Verify filters candidate roots against the equation: a root is kept when it
// is effectively real and its residual is below the verification tolerance.
// Pure exponentials with a constant positive base short-circuit to no roots.
// Verifying an already verified set returns it unchanged.
func (s *Solver) Verify(roots []complex128, eq *Equation) []complex128 {
	if isConstantBaseExponential(eq.Expr) {
		return []complex128{}
	}

	tol := s.opts.VerifyTol
	verified := make([]complex128, 0, len(roots))
	for _, r := range roots {
		if math.Abs(imag(r)) > tol {
			continue
		}
		if residualAt(eq, real(r)) < tol {
			verified = append(verified, complex(real(r), 0))
		}
	}

	for _, entry := range boundaryCandidates {
		if !symbol.ContainsFunc(eq.Expr, entry.fn) {
			continue
		}
		for _, v := range entry.values {
			if residualAt(eq, v) < tol && !containsValue(verified, v) {
				verified = append(verified, complex(v, 0))
			}
		}
	}
	return verified
}

// residualAt returns |f(x)|, with evaluation failures mapped to +Inf so they
// never pass a tolerance check.
func residualAt(eq *Equation, x float64) float64 {
	v, err := symbol.EvalReal(eq.Expr, map[string]float64{eq.Variable: x})
	if err != nil || math.IsNaN(v) {
		return math.Inf(1)
	}
	return math.Abs(v)
}

// isConstantBaseExponential reports whether the whole expression is a power
// with a numeric base, including exp(...). Such expressions never cross zero
// on the real line.
func isConstantBaseExponential(e symbol.Expr) bool {
	switch v := e.(type) {
	case *symbol.Pow:
		_, baseIsNum := v.Base().(*symbol.Num)
		return baseIsNum
	case *symbol.Func:
		return v.FuncName() == "exp"
	}
	return false
}

func containsValue(roots []complex128, v float64) bool {
	for _, r := range roots {
		if real(r) == v {
			return true
		}
		if math.Abs(real(r)-v) < 1e-9 {
			return true
		}
	}
	return false
}

// CheckRoots independently tests candidate roots against the equation,
// complex values included. Keys are the candidates, values report whether the
// residual stayed below tol.
func CheckRoots(eq *Equation, roots []complex128, tol float64) map[complex128]bool {
	out := make(map[complex128]bool, len(roots))
	for _, r := range roots {
		v, err := symbol.EvalComplex(eq.Expr, map[string]complex128{eq.Variable: r})
		out[r] = err == nil && cmplx.Abs(v) < tol
	}
	return out
}

// CheckLinear tests a proposed solution row by row. Keys are 1-based equation
// indexes.
func CheckLinear(coeffs [][]float64, constants []float64, solution []float64, tol float64) map[int]bool {
	out := make(map[int]bool, len(coeffs))
	for i, row := range coeffs {
		dot := 0.0
		for j, c := range row {
			if j < len(solution) {
				dot += c * solution[j]
			}
		}
		out[i+1] = i < len(constants) && math.Abs(dot-constants[i]) < tol
	}
	return out
}
