// Package tools defines the MCP tool surface: equation solving, solution
// testing, linear systems, matrix operations, and history access.
package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/selamgh/mcp-equation-solver/internal/history"
	"github.com/selamgh/mcp-equation-solver/internal/solver"
)

// Tools bundles the solver and the shared history store behind the handlers.
type Tools struct {
	solver  *solver.Solver
	history *history.Store
}

func New(s *solver.Solver, h *history.Store) *Tools {
	return &Tools{solver: s, history: h}
}

// Register adds every tool to the MCP server.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool(
		"solve_equation",
		mcp.WithDescription("Solve a nonlinear equation in one variable. Polynomial equations report every root including complex ones; other equations are solved numerically over a seeded grid. Only verified real solutions are reported as solutions."),
		mcp.WithString("expression",
			mcp.Description("The equation to solve, e.g. 'x^2 = 4', 'sin(x) - 0.5', 'e^x - 3'"),
			mcp.Required(),
		),
	), t.handleSolveEquation)

	s.AddTool(mcp.NewTool(
		"test_solution",
		mcp.WithDescription("Solve an equation and independently test each verified solution by substituting it back into the equation"),
		mcp.WithString("expression",
			mcp.Description("The equation whose solutions should be tested"),
			mcp.Required(),
		),
	), t.handleTestSolution)

	s.AddTool(mcp.NewTool(
		"solve_linear_system",
		mcp.WithDescription("Classify and solve a system of linear equations. Reports no solution, the unique solution, or (for underdetermined systems) the minimum-norm member of the solution family."),
		mcp.WithString("coefficients",
			mcp.Description("Coefficient rows separated by semicolons, e.g. '1 1; 1 -1'"),
			mcp.Required(),
		),
		mcp.WithString("constants",
			mcp.Description("Right-hand side constants, e.g. '3 1'"),
			mcp.Required(),
		),
	), t.handleSolveLinearSystem)

	s.AddTool(mcp.NewTool(
		"matrix_op",
		mcp.WithDescription("Matrix operations: determinant, inverse, transpose, rank, power, multiply, eigen"),
		mcp.WithString("operation",
			mcp.Description("One of: determinant, inverse, transpose, rank, power, multiply, eigen"),
			mcp.Required(),
		),
		mcp.WithString("matrix",
			mcp.Description("Matrix rows separated by semicolons, e.g. '1 2; 3 4'"),
			mcp.Required(),
		),
		mcp.WithString("power",
			mcp.Description("Integer exponent for the power operation; negative inverts first"),
		),
		mcp.WithString("matrix_b",
			mcp.Description("Second matrix for the multiply operation"),
		),
	), t.handleMatrixOp)

	s.AddTool(mcp.NewTool(
		"history",
		mcp.WithDescription("List or clear recorded solves by category (nonlinear, linear, matrix)"),
		mcp.WithString("action",
			mcp.Description("Either 'list' or 'clear'"),
			mcp.Required(),
		),
		mcp.WithString("category",
			mcp.Description("One of: nonlinear, linear, matrix"),
			mcp.Required(),
		),
	), t.handleHistory)
}
