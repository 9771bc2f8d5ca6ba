package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LinearKind classifies a linear system by comparing the rank of the
// coefficient matrix with the rank of the augmented matrix.
type LinearKind int

const (
	LinearNone LinearKind = iota
	LinearUnique
	LinearInfinite
)

func (k LinearKind) String() string {
	switch k {
	case LinearNone:
		return "no solution"
	case LinearUnique:
		return "unique solution"
	case LinearInfinite:
		return "infinitely many solutions"
	}
	return "unknown"
}

// LinearSolution carries the classification and, when one exists, a concrete
// solution vector. For the infinite case Values is the minimum-norm member of
// the solution family.
type LinearSolution struct {
	Kind   LinearKind
	Values []float64
}

// SolveLinearSystem classifies and solves coeffs·x = constants.
func SolveLinearSystem(coeffs [][]float64, constants []float64) (*LinearSolution, error) {
	if len(coeffs) == 0 || len(constants) == 0 {
		return nil, ErrEmptySystem
	}
	if len(coeffs) != len(constants) {
		return nil, fmt.Errorf("%d equations but %d constants", len(coeffs), len(constants))
	}
	m := len(coeffs)
	n := len(coeffs[0])
	if n == 0 {
		return nil, ErrEmptySystem
	}
	for i, row := range coeffs {
		if len(row) != n {
			return nil, fmt.Errorf("equation %d has %d coefficients, want %d", i+1, len(row), n)
		}
	}

	a := mat.NewDense(m, n, nil)
	aug := mat.NewDense(m, n+1, nil)
	b := mat.NewVecDense(m, nil)
	for i, row := range coeffs {
		for j, c := range row {
			a.Set(i, j, c)
			aug.Set(i, j, c)
		}
		aug.Set(i, n, constants[i])
		b.SetVec(i, constants[i])
	}

	rankA, err := Rank(a)
	if err != nil {
		return nil, err
	}
	rankAug, err := Rank(aug)
	if err != nil {
		return nil, err
	}

	switch {
	case rankA < rankAug:
		return &LinearSolution{Kind: LinearNone}, nil
	case rankA == n:
		var x mat.VecDense
		if err := x.SolveVec(a, b); err != nil {
			return nil, fmt.Errorf("solving system: %w", err)
		}
		return &LinearSolution{Kind: LinearUnique, Values: vecSlice(&x)}, nil
	}

	x, err := minimumNormSolution(a, b)
	if err != nil {
		return nil, err
	}
	return &LinearSolution{Kind: LinearInfinite, Values: x}, nil
}

// minimumNormSolution computes x = V·Σ⁺·Uᵀ·b from the thin SVD, the shortest
// vector satisfying the (consistent, underdetermined) system.
func minimumNormSolution(a *mat.Dense, b *mat.VecDense) ([]float64, error) {
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, fmt.Errorf("SVD factorization failed")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	vals := svd.Values(nil)

	thr := rankThreshold(vals)
	k := len(vals)

	// y = Σ⁺·Uᵀ·b
	y := make([]float64, k)
	for i := 0; i < k; i++ {
		if vals[i] <= thr {
			continue
		}
		dot := 0.0
		for r := 0; r < b.Len(); r++ {
			dot += u.At(r, i) * b.AtVec(r)
		}
		y[i] = dot / vals[i]
	}

	_, n := a.Dims()
	x := make([]float64, n)
	for r := 0; r < n; r++ {
		for i := 0; i < k; i++ {
			x[r] += v.At(r, i) * y[i]
		}
	}
	return x, nil
}

func vecSlice(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
