package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"gonum.org/v1/gonum/mat"

	"github.com/selamgh/mcp-equation-solver/internal/solver"
)

func (t *Tools) handleMatrixOp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	operation, err := request.RequireString("operation")
	if err != nil {
		return mcp.NewToolResultError("Operation parameter is required"), nil
	}
	matrixText, err := request.RequireString("matrix")
	if err != nil {
		return mcp.NewToolResultError("Matrix parameter is required"), nil
	}

	a, err := ParseMatrix(matrixText)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error reading matrix: %v", err)), nil
	}

	var output string
	switch operation {
	case "determinant":
		det, err := solver.Determinant(a)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
		}
		output = solver.FormatFloat(det)

	case "inverse":
		inv, err := solver.Inverse(a)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
		}
		output = solver.FormatMatrix(inv)

	case "transpose":
		output = solver.FormatMatrix(solver.Transpose(a))

	case "rank":
		rank, err := solver.Rank(a)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
		}
		output = strconv.Itoa(rank)

	case "power":
		n, err := requireInt(request, "power")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
		}
		p, err := solver.Power(a, n)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
		}
		output = solver.FormatMatrix(p)

	case "multiply":
		bText := request.GetString("matrix_b", "")
		if bText == "" {
			return mcp.NewToolResultError("Error: multiply requires matrix_b"), nil
		}
		b, err := ParseMatrix(bText)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error reading matrix_b: %v", err)), nil
		}
		prod, err := solver.Multiply(a, b)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
		}
		output = solver.FormatMatrix(prod)

	case "eigen":
		values, vectors, err := solver.Eigen(a)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
		}
		var b strings.Builder
		b.WriteString("Eigenvalues: " + solver.FormatRoots(values))
		r, c := vectors.Dims()
		for j := 0; j < c; j++ {
			parts := make([]string, r)
			for i := 0; i < r; i++ {
				parts[i] = solver.FormatComplex(vectors.At(i, j))
			}
			fmt.Fprintf(&b, "\nv%d: (%s)", j+1, strings.Join(parts, ", "))
		}
		output = b.String()

	default:
		return mcp.NewToolResultError(fmt.Sprintf("Error: unsupported operation %q. Supported: determinant, inverse, transpose, rank, power, multiply, eigen", operation)), nil
	}

	t.history.Add("matrix", operation+" "+matrixText, output)
	return mcp.NewToolResultText(output), nil
}

// ParseMatrix reads "1 2; 3 4" into a dense matrix with consistent row
// lengths and finite entries.
func ParseMatrix(text string) (*mat.Dense, error) {
	rows, err := parseRows(text)
	if err != nil {
		return nil, err
	}
	cols := len(rows[0])
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("row %d has %d entries, want %d", i+1, len(r), cols)
		}
	}
	out := mat.NewDense(len(rows), cols, flatten(rows))
	if !solver.IsFiniteMatrix(out) {
		return nil, fmt.Errorf("matrix entries must be finite")
	}
	return out, nil
}

func requireInt(request mcp.CallToolRequest, key string) (int, error) {
	raw := request.GetString(key, "")
	if raw == "" {
		return 0, fmt.Errorf("%s parameter is required", key)
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}
