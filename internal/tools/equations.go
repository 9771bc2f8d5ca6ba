package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/selamgh/mcp-equation-solver/internal/solver"
)

const noRealRoots = "No real roots found"

func (t *Tools) handleSolveEquation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expression, err := request.RequireString("expression")
	if err != nil {
		return mcp.NewToolResultError("Expression parameter is required"), nil
	}
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return mcp.NewToolResultError("Expression cannot be empty"), nil
	}

	eq, err := t.solver.Classify(ctx, expression)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error solving equation: %v", err)), nil
	}
	roots, err := t.solver.FindRoots(ctx, eq)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error solving equation: %v", err)), nil
	}
	verified := t.solver.Verify(roots, eq)

	var b strings.Builder
	summary := noRealRoots
	if len(verified) > 0 {
		summary = "Solutions: " + solver.FormatRoots(verified)
	}
	b.WriteString(summary)
	if len(roots) > 0 {
		fmt.Fprintf(&b, "\nAll roots: %s", solver.FormatRoots(roots))
	}
	fmt.Fprintf(&b, "\nMethod: %s", describeForm(eq.Form))

	t.history.Add("nonlinear", expression, summary)
	return mcp.NewToolResultText(b.String()), nil
}

func (t *Tools) handleTestSolution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expression, err := request.RequireString("expression")
	if err != nil {
		return mcp.NewToolResultError("Expression parameter is required"), nil
	}

	eq, err := t.solver.Classify(ctx, expression)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error testing solution: %v", err)), nil
	}
	roots, err := t.solver.FindRoots(ctx, eq)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error testing solution: %v", err)), nil
	}
	verified := t.solver.Verify(roots, eq)
	if len(verified) == 0 {
		return mcp.NewToolResultText("No solutions to test"), nil
	}

	checks := solver.CheckRoots(eq, verified, 1e-6)
	var b strings.Builder
	for i, r := range verified {
		if i > 0 {
			b.WriteString("\n")
		}
		verdict := "fail"
		if checks[r] {
			verdict = "pass"
		}
		fmt.Fprintf(&b, "%s = %s: %s", eq.Variable, solver.FormatComplex(r), verdict)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func describeForm(f solver.Form) string {
	switch v := f.(type) {
	case solver.Polynomial:
		return fmt.Sprintf("polynomial (degree %d)", len(v.Coeffs)-1)
	case solver.General:
		return "numeric grid search"
	}
	return "unknown"
}
