package browser

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/entrhq/conductor/pkg/agent/tools"
)

// EvaluateTool runs JavaScript in the page.
type EvaluateTool struct {
	session *Session
}

// NewEvaluateTool creates a new evaluate tool.
func NewEvaluateTool(session *Session) *EvaluateTool {
	return &EvaluateTool{session: session}
}

// Name returns the tool name.
func (t *EvaluateTool) Name() string {
	return "playwright_evaluate"
}

// Description returns the tool description.
func (t *EvaluateTool) Description() string {
	return "Evaluate a JavaScript expression in the page and return its JSON-encoded result."
}

// Schema returns the tool's JSON schema.
func (t *EvaluateTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"expression": tools.StringProperty("JavaScript expression to evaluate, e.g. document.title"),
		},
		[]string{"expression"},
	)
}

// Execute evaluates the expression.
func (t *EvaluateTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	expression := tools.StringArg(args, "expression")
	if strings.TrimSpace(expression) == "" {
		return "", errors.New("expression is required")
	}

	result, err := t.session.Evaluate(expression)
	if err != nil {
		return "", err
	}
	return "JavaScript result: " + result, nil
}
