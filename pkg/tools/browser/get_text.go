package browser

import (
	"context"

	"github.com/entrhq/conductor/pkg/agent/tools"
)

// GetTextTool reads text from the page.
type GetTextTool struct {
	session *Session
}

// NewGetTextTool creates a new get text tool.
func NewGetTextTool(session *Session) *GetTextTool {
	return &GetTextTool{session: session}
}

// Name returns the tool name.
func (t *GetTextTool) Name() string {
	return "playwright_get_text"
}

// Description returns the tool description.
func (t *GetTextTool) Description() string {
	return "Get the text content of the element matching a CSS selector, or the visible text of the whole page when no selector is given."
}

// Schema returns the tool's JSON schema.
func (t *GetTextTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"selector": tools.StringProperty("CSS selector of the element to read (optional)"),
		},
		nil,
	)
}

// Execute reads the text.
func (t *GetTextTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	text, err := t.session.GetText(tools.StringArg(args, "selector"))
	if err != nil {
		return "", err
	}
	if text == "" {
		return "Text content: (no text found)", nil
	}
	return "Text content: " + text, nil
}
