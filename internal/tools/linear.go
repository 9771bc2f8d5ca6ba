package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/selamgh/mcp-equation-solver/internal/solver"
)

func (t *Tools) handleSolveLinearSystem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	coeffText, err := request.RequireString("coefficients")
	if err != nil {
		return mcp.NewToolResultError("Coefficients parameter is required"), nil
	}
	constText, err := request.RequireString("constants")
	if err != nil {
		return mcp.NewToolResultError("Constants parameter is required"), nil
	}

	coeffs, err := parseRows(coeffText)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error reading coefficients: %v", err)), nil
	}
	constRows, err := parseRows(constText)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error reading constants: %v", err)), nil
	}
	constants := flatten(constRows)

	sol, err := solver.SolveLinearSystem(coeffs, constants)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error solving system: %v", err)), nil
	}

	var b strings.Builder
	b.WriteString("Classification: " + sol.Kind.String())
	if sol.Values != nil {
		fmt.Fprintf(&b, "\nSolution: %s", solver.FormatVector(sol.Values))
		if sol.Kind == solver.LinearInfinite {
			b.WriteString(" (minimum-norm member of the solution family)")
		}
		checks := solver.CheckLinear(coeffs, constants, sol.Values, 1e-8)
		for i := 1; i <= len(coeffs); i++ {
			verdict := "fail"
			if checks[i] {
				verdict = "pass"
			}
			fmt.Fprintf(&b, "\nequation %d: %s", i, verdict)
		}
	}

	input := fmt.Sprintf("%s | %s", coeffText, constText)
	t.history.Add("linear", input, sol.Kind.String())
	return mcp.NewToolResultText(b.String()), nil
}

// parseRows reads "1 2; 3 4" into rows of floats. Commas work as cell
// separators too.
func parseRows(text string) ([][]float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty input")
	}
	rowTexts := strings.Split(text, ";")
	rows := make([][]float64, 0, len(rowTexts))
	for _, rt := range rowTexts {
		rt = strings.ReplaceAll(rt, ",", " ")
		fields := strings.Fields(rt)
		if len(fields) == 0 {
			return nil, fmt.Errorf("empty row")
		}
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q", f)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func flatten(rows [][]float64) []float64 {
	var out []float64
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}
