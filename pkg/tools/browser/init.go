package browser

import (
	"context"
	"fmt"

	"github.com/entrhq/conductor/pkg/agent/tools"
)

// InitTool starts the browser session.
type InitTool struct {
	session *Session
}

// NewInitTool creates a new init tool.
func NewInitTool(session *Session) *InitTool {
	return &InitTool{session: session}
}

// Name returns the tool name.
func (t *InitTool) Name() string {
	return "playwright_init"
}

// Description returns the tool description.
func (t *InitTool) Description() string {
	return "Initialize the Playwright browser. Must be called before any other playwright_* tool."
}

// Schema returns the tool's JSON schema.
func (t *InitTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute initializes the session. Calling it on an active session is harmless.
func (t *InitTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	if t.session.State() == StateActive {
		return "Browser is already initialized.", nil
	}
	if err := t.session.Initialize(ctx); err != nil {
		return "", err
	}

	mode := "headed"
	if t.session.Options().Headless {
		mode = "headless"
	}
	viewport := t.session.Viewport()
	return fmt.Sprintf("Browser initialized (%s, viewport %dx%d).", mode, viewport.Width, viewport.Height), nil
}
