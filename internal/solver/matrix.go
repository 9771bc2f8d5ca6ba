package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix operations delegated to gonum. Shape validation happens here so the
// tool layer reports plain messages instead of gonum panics.

func Determinant(a *mat.Dense) (float64, error) {
	if err := requireSquare(a); err != nil {
		return 0, err
	}
	return mat.Det(a), nil
}

func Inverse(a *mat.Dense) (*mat.Dense, error) {
	if err := requireSquare(a); err != nil {
		return nil, err
	}
	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		return nil, fmt.Errorf("matrix is singular: %w", err)
	}
	return &inv, nil
}

func Transpose(a *mat.Dense) *mat.Dense {
	var out mat.Dense
	out.CloneFrom(a.T())
	return &out
}

// Rank counts singular values above a scale-relative threshold.
func Rank(a mat.Matrix) (int, error) {
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDNone) {
		return 0, fmt.Errorf("SVD factorization failed")
	}
	vals := svd.Values(nil)
	thr := rankThreshold(vals)
	rank := 0
	for _, v := range vals {
		if v > thr {
			rank++
		}
	}
	return rank, nil
}

func rankThreshold(vals []float64) float64 {
	if len(vals) == 0 || vals[0] == 0 {
		return 0
	}
	return float64(len(vals)) * 1e-12 * vals[0]
}

// Power raises a square matrix to an integer power. Negative powers invert
// first; power zero is the identity.
func Power(a *mat.Dense, n int) (*mat.Dense, error) {
	if err := requireSquare(a); err != nil {
		return nil, err
	}
	dim, _ := a.Dims()
	if n == 0 {
		out := mat.NewDense(dim, dim, nil)
		for i := 0; i < dim; i++ {
			out.Set(i, i, 1)
		}
		return out, nil
	}
	base := a
	if n < 0 {
		inv, err := Inverse(a)
		if err != nil {
			return nil, err
		}
		base = inv
		n = -n
	}
	var out mat.Dense
	out.Pow(base, n)
	return &out, nil
}

func Multiply(a, b *mat.Dense) (*mat.Dense, error) {
	_, ac := a.Dims()
	br, _ := b.Dims()
	if ac != br {
		return nil, fmt.Errorf("cannot multiply: %d columns vs %d rows", ac, br)
	}
	var out mat.Dense
	out.Mul(a, b)
	return &out, nil
}

// Eigen returns eigenvalues and right eigenvectors, both complex-capable.
func Eigen(a *mat.Dense) ([]complex128, *mat.CDense, error) {
	if err := requireSquare(a); err != nil {
		return nil, nil, err
	}
	var eig mat.Eigen
	if !eig.Factorize(a, mat.EigenRight) {
		return nil, nil, fmt.Errorf("eigendecomposition failed")
	}
	values := eig.Values(nil)
	var vectors mat.CDense
	eig.VectorsTo(&vectors)
	return values, &vectors, nil
}

func requireSquare(a mat.Matrix) error {
	r, c := a.Dims()
	if r != c {
		return fmt.Errorf("matrix must be square, got %dx%d", r, c)
	}
	return nil
}

// IsFiniteMatrix reports whether every entry is a finite number.
func IsFiniteMatrix(a *mat.Dense) bool {
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := a.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
