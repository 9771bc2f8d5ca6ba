package solver

import (
	"errors"
	"math"
	"testing"
)

func TestSolveLinearSystem(t *testing.T) {
	tests := []struct {
		name      string
		coeffs    [][]float64
		constants []float64
		kind      LinearKind
		values    []float64
	}{
		{
			"unique_2x2",
			[][]float64{{1, 1}, {1, -1}},
			[]float64{3, 1},
			LinearUnique,
			[]float64{2, 1},
		},
		{
			"unique_3x3",
			[][]float64{{2, 0, 0}, {0, 3, 0}, {0, 0, 4}},
			[]float64{4, 9, 8},
			LinearUnique,
			[]float64{2, 3, 2},
		},
		{
			"inconsistent",
			[][]float64{{1, 1}, {1, 1}},
			[]float64{1, 2},
			LinearNone,
			nil,
		},
		{
			"underdetermined",
			[][]float64{{1, 1}},
			[]float64{2},
			LinearInfinite,
			[]float64{1, 1}, // minimum-norm member
		},
		{
			"dependent_rows",
			[][]float64{{1, 1}, {2, 2}},
			[]float64{2, 4},
			LinearInfinite,
			[]float64{1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol, err := SolveLinearSystem(tt.coeffs, tt.constants)
			if err != nil {
				t.Fatal(err)
			}
			if sol.Kind != tt.kind {
				t.Fatalf("kind = %v, want %v", sol.Kind, tt.kind)
			}
			if tt.values == nil {
				return
			}
			if len(sol.Values) != len(tt.values) {
				t.Fatalf("values = %v, want %v", sol.Values, tt.values)
			}
			for i := range tt.values {
				if math.Abs(sol.Values[i]-tt.values[i]) > 1e-9 {
					t.Fatalf("values = %v, want %v", sol.Values, tt.values)
				}
			}
			// Whatever came out must satisfy every equation.
			checks := CheckLinear(tt.coeffs, tt.constants, sol.Values, 1e-8)
			for idx, ok := range checks {
				if !ok {
					t.Errorf("equation %d not satisfied by %v", idx, sol.Values)
				}
			}
		})
	}
}

func TestSolveLinearSystemErrors(t *testing.T) {
	if _, err := SolveLinearSystem(nil, nil); !errors.Is(err, ErrEmptySystem) {
		t.Errorf("empty system error = %v, want ErrEmptySystem", err)
	}
	if _, err := SolveLinearSystem([][]float64{{1}}, []float64{1, 2}); err == nil {
		t.Error("expected error for mismatched constants")
	}
	if _, err := SolveLinearSystem([][]float64{{1, 2}, {1}}, []float64{1, 2}); err == nil {
		t.Error("expected error for ragged rows")
	}
}
