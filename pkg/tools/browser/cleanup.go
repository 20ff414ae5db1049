package browser

import (
	"context"
	"fmt"

	"github.com/entrhq/conductor/pkg/agent/tools"
)

// CleanupTool closes the browser session.
type CleanupTool struct {
	session *Session
}

// NewCleanupTool creates a new cleanup tool.
func NewCleanupTool(session *Session) *CleanupTool {
	return &CleanupTool{session: session}
}

// Name returns the tool name.
func (t *CleanupTool) Name() string {
	return "playwright_cleanup"
}

// Description returns the tool description.
func (t *CleanupTool) Description() string {
	return "Close the browser and release its resources. playwright_init can start it again."
}

// Schema returns the tool's JSON schema.
func (t *CleanupTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute closes the session. It never fails; teardown problems are reported in the text.
func (t *CleanupTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	t.session.Cleanup()

	errs := t.session.LastCleanupErrors()
	if len(errs) == 0 {
		return "Browser closed.", nil
	}
	return fmt.Sprintf("Browser closed with %d teardown warning(s): %v", len(errs), errs), nil
}
