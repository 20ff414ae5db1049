package basic

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/entrhq/conductor/pkg/agent/tools"
)

// CalculateTool evaluates simple arithmetic expressions.
type CalculateTool struct{}

// NewCalculateTool creates a new calculate tool.
func NewCalculateTool() *CalculateTool {
	return &CalculateTool{}
}

// Name returns the tool name.
func (t *CalculateTool) Name() string {
	return "calculate"
}

// Description returns the tool description.
func (t *CalculateTool) Description() string {
	return "Evaluate a simple arithmetic expression using + - * / and parentheses."
}

// Schema returns the tool's JSON schema.
func (t *CalculateTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"expression": tools.StringProperty("Arithmetic expression to evaluate (e.g. 2+2, 10*5)"),
		},
		[]string{"expression"},
	)
}

// Execute evaluates the expression and returns "<expression> = <result>".
func (t *CalculateTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	expression := tools.StringArg(args, "expression")

	result, err := Evaluate(expression)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s = %s", strings.TrimSpace(expression), strconv.FormatFloat(result, 'f', -1, 64)), nil
}

// Evaluate computes an arithmetic expression. Only digits, whitespace and
// the characters + - * / ( ) . are accepted, and the result must be finite.
func Evaluate(expression string) (float64, error) {
	if strings.TrimSpace(expression) == "" {
		return 0, errors.New("expression is required")
	}
	for _, r := range expression {
		if !allowedRune(r) {
			return 0, errors.Newf("expression contains a disallowed character %q", r)
		}
	}

	node, err := parser.ParseExpr(expression)
	if err != nil {
		return 0, errors.Wrap(err, "invalid expression")
	}

	result, err := eval(node)
	if err != nil {
		return 0, err
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, errors.New("expression does not have a finite result")
	}
	return result, nil
}

func allowedRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case strings.ContainsRune("+-*/().", r):
		return true
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		return true
	default:
		return false
	}
}

func eval(node ast.Expr) (float64, error) {
	switch n := node.(type) {
	case *ast.BasicLit:
		if n.Kind != token.INT && n.Kind != token.FLOAT {
			return 0, errors.Newf("unsupported literal %s", n.Value)
		}
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid number %s", n.Value)
		}
		return v, nil

	case *ast.ParenExpr:
		return eval(n.X)

	case *ast.UnaryExpr:
		v, err := eval(n.X)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case token.ADD:
			return v, nil
		case token.SUB:
			return -v, nil
		}
		return 0, errors.Newf("unsupported operator %s", n.Op)

	case *ast.BinaryExpr:
		x, err := eval(n.X)
		if err != nil {
			return 0, err
		}
		y, err := eval(n.Y)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case token.ADD:
			return x + y, nil
		case token.SUB:
			return x - y, nil
		case token.MUL:
			return x * y, nil
		case token.QUO:
			return x / y, nil
		}
		return 0, errors.Newf("unsupported operator %s", n.Op)
	}

	return 0, errors.Newf("unsupported expression %T", node)
}
