package browser

import (
	"context"

	"github.com/entrhq/conductor/pkg/agent/tools"
)

// ScreenshotTool captures the full page.
type ScreenshotTool struct {
	session *Session
}

// NewScreenshotTool creates a new screenshot tool.
func NewScreenshotTool(session *Session) *ScreenshotTool {
	return &ScreenshotTool{session: session}
}

// Name returns the tool name.
func (t *ScreenshotTool) Name() string {
	return "playwright_screenshot"
}

// Description returns the tool description.
func (t *ScreenshotTool) Description() string {
	return "Take a full-page PNG screenshot, returned as a base64 data URL."
}

// Schema returns the tool's JSON schema.
func (t *ScreenshotTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute takes the screenshot.
func (t *ScreenshotTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	dataURL, err := t.session.Screenshot()
	if err != nil {
		return "", err
	}
	return "Screenshot captured: " + dataURL, nil
}
