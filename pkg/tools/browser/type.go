package browser

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/entrhq/conductor/pkg/agent/tools"
)

// TypeTool fills an input element with text.
type TypeTool struct {
	session *Session
}

// NewTypeTool creates a new type tool.
func NewTypeTool(session *Session) *TypeTool {
	return &TypeTool{session: session}
}

// Name returns the tool name.
func (t *TypeTool) Name() string {
	return "playwright_type"
}

// Description returns the tool description.
func (t *TypeTool) Description() string {
	return "Type text into the input element matching a CSS selector, replacing its current value."
}

// Schema returns the tool's JSON schema.
func (t *TypeTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"selector": tools.StringProperty("CSS selector of the input element"),
			"text":     tools.StringProperty("Text to enter"),
		},
		[]string{"selector", "text"},
	)
}

// Execute fills the element.
func (t *TypeTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	selector := tools.StringArg(args, "selector")
	if selector == "" {
		return "", errors.New("selector is required")
	}
	text := tools.StringArg(args, "text")

	if err := t.session.Type(selector, text); err != nil {
		return "", err
	}
	return fmt.Sprintf("Typed %q into %s", text, selector), nil
}
