package browser

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/entrhq/conductor/pkg/agent/tools"
)

// ClickTool clicks an element on the page.
type ClickTool struct {
	session *Session
}

// NewClickTool creates a new click tool.
func NewClickTool(session *Session) *ClickTool {
	return &ClickTool{session: session}
}

// Name returns the tool name.
func (t *ClickTool) Name() string {
	return "playwright_click"
}

// Description returns the tool description.
func (t *ClickTool) Description() string {
	return "Click the element matching a CSS selector."
}

// Schema returns the tool's JSON schema.
func (t *ClickTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"selector": tools.StringProperty("CSS selector of the element to click"),
		},
		[]string{"selector"},
	)
}

// Execute clicks the element.
func (t *ClickTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	selector := tools.StringArg(args, "selector")
	if selector == "" {
		return "", errors.New("selector is required")
	}
	if err := t.session.Click(selector); err != nil {
		return "", err
	}
	return fmt.Sprintf("Clicked element: %s", selector), nil
}
