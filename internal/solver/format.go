package solver

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// FormatFloat renders integral values bare and everything else fixed-point
// with 8 decimal digits, trailing zeros trimmed.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	s := fmt.Sprintf("%.8f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

// FormatComplex renders real values as plain numbers and complex ones with an
// i suffix, both parts following the FormatFloat rule.
func FormatComplex(z complex128) string {
	re, im := real(z), imag(z)
	if im == 0 {
		return FormatFloat(re)
	}
	sign := "+"
	if im < 0 || math.IsInf(im, -1) {
		sign = "-"
		im = -im
	}
	if re == 0 {
		return fmt.Sprintf("%s%si", strings.TrimPrefix(sign, "+"), FormatFloat(im))
	}
	return fmt.Sprintf("%s%s%si", FormatFloat(re), sign, FormatFloat(im))
}

// FormatRoots joins formatted roots with commas.
func FormatRoots(roots []complex128) string {
	parts := make([]string, len(roots))
	for i, r := range roots {
		parts[i] = FormatComplex(r)
	}
	return strings.Join(parts, ", ")
}

// FormatVector renders a solution vector as (a, b, c).
func FormatVector(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatFloat(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// FormatMatrix renders rows separated by semicolons, the same shape the
// matrix tools accept as input.
func FormatMatrix(a mat.Matrix) string {
	r, c := a.Dims()
	rows := make([]string, r)
	for i := 0; i < r; i++ {
		cells := make([]string, c)
		for j := 0; j < c; j++ {
			cells[j] = FormatFloat(a.At(i, j))
		}
		rows[i] = strings.Join(cells, " ")
	}
	return strings.Join(rows, "; ")
}
