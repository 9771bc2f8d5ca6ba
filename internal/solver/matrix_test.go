package solver

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestDeterminant(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	det, err := Determinant(a)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(det-(-2)) > 1e-12 {
		t.Errorf("det = %v, want -2", det)
	}

	if _, err := Determinant(mat.NewDense(2, 3, nil)); err == nil {
		t.Error("expected error for non-square matrix")
	}
}

func TestInverse(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{4, 7, 2, 6})
	inv, err := Inverse(a)
	if err != nil {
		t.Fatal(err)
	}
	prod, err := Multiply(a, inv)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(prod.At(i, j)-want) > 1e-9 {
				t.Errorf("A*A^-1 at (%d,%d) = %v", i, j, prod.At(i, j))
			}
		}
	}

	singular := mat.NewDense(2, 2, []float64{1, 2, 2, 4})
	if _, err := Inverse(singular); err == nil {
		t.Error("expected error for singular matrix")
	}
}

func TestTranspose(t *testing.T) {
	a := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	tr := Transpose(a)
	r, c := tr.Dims()
	if r != 3 || c != 2 {
		t.Fatalf("dims = %dx%d, want 3x2", r, c)
	}
	if tr.At(2, 1) != 6 {
		t.Errorf("At(2,1) = %v, want 6", tr.At(2, 1))
	}
}

func TestRank(t *testing.T) {
	full := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	deficient := mat.NewDense(2, 2, []float64{1, 2, 2, 4})

	if r, err := Rank(full); err != nil || r != 2 {
		t.Errorf("rank(I) = %d (%v), want 2", r, err)
	}
	if r, err := Rank(deficient); err != nil || r != 1 {
		t.Errorf("rank = %d (%v), want 1", r, err)
	}
}

func TestPower(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{2, 0, 0, 3})

	sq, err := Power(a, 2)
	if err != nil {
		t.Fatal(err)
	}
	if sq.At(0, 0) != 4 || sq.At(1, 1) != 9 {
		t.Errorf("A^2 = %v", mat.Formatted(sq))
	}

	id, err := Power(a, 0)
	if err != nil {
		t.Fatal(err)
	}
	if id.At(0, 0) != 1 || id.At(0, 1) != 0 || id.At(1, 1) != 1 {
		t.Errorf("A^0 = %v", mat.Formatted(id))
	}

	neg, err := Power(a, -1)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(neg.At(0, 0)-0.5) > 1e-12 {
		t.Errorf("A^-1 at (0,0) = %v, want 0.5", neg.At(0, 0))
	}
}

func TestMultiplyDimensionCheck(t *testing.T) {
	a := mat.NewDense(2, 3, nil)
	b := mat.NewDense(2, 2, nil)
	if _, err := Multiply(a, b); err == nil {
		t.Error("expected dimension error")
	}
}

func TestEigen(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{2, 0, 0, 3})
	values, vectors, err := Eigen(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 2 {
		t.Fatalf("got %d eigenvalues", len(values))
	}
	found2, found3 := false, false
	for _, v := range values {
		if math.Abs(real(v)-2) < 1e-9 && math.Abs(imag(v)) < 1e-9 {
			found2 = true
		}
		if math.Abs(real(v)-3) < 1e-9 && math.Abs(imag(v)) < 1e-9 {
			found3 = true
		}
	}
	if !found2 || !found3 {
		t.Errorf("eigenvalues = %v, want 2 and 3", values)
	}
	r, c := vectors.Dims()
	if r != 2 || c != 2 {
		t.Errorf("eigenvector dims = %dx%d", r, c)
	}
}

func TestIsFiniteMatrix(t *testing.T) {
	ok := mat.NewDense(1, 2, []float64{1, 2})
	bad := mat.NewDense(1, 2, []float64{1, math.Inf(1)})
	if !IsFiniteMatrix(ok) {
		t.Error("finite matrix flagged")
	}
	if IsFiniteMatrix(bad) {
		t.Error("infinite entry not flagged")
	}
}
