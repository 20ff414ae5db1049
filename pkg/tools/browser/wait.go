package browser

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/entrhq/conductor/pkg/agent/tools"
)

// WaitTool waits for an element to appear.
type WaitTool struct {
	session *Session
}

// NewWaitTool creates a new wait tool.
func NewWaitTool(session *Session) *WaitTool {
	return &WaitTool{session: session}
}

// Name returns the tool name.
func (t *WaitTool) Name() string {
	return "playwright_wait_for"
}

// Description returns the tool description.
func (t *WaitTool) Description() string {
	return "Wait until an element matching a CSS selector appears on the page."
}

// Schema returns the tool's JSON schema.
func (t *WaitTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"selector": tools.StringProperty("CSS selector to wait for"),
			"timeout":  tools.NumberProperty("Maximum time to wait in milliseconds (default 5000)"),
		},
		[]string{"selector"},
	)
}

// Execute waits for the element.
func (t *WaitTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	selector := tools.StringArg(args, "selector")
	if selector == "" {
		return "", errors.New("selector is required")
	}

	timeout := float64(DefaultWaitTimeout)
	if v, ok := tools.NumberArg(args, "timeout"); ok {
		if v < 0 || v > MaxWaitTimeout {
			return "", errors.Newf("timeout must be between 0 and %d milliseconds", MaxWaitTimeout)
		}
		if v > 0 {
			timeout = v
		}
	}

	if err := t.session.WaitFor(selector, timeout); err != nil {
		return "", err
	}
	return fmt.Sprintf("Element appeared: %s (timeout %.0f ms)", selector, timeout), nil
}
