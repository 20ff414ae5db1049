package browser

import (
	"context"
	"fmt"

	"github.com/entrhq/conductor/pkg/agent/tools"
)

// PageInfoTool reports the page's URL and title.
type PageInfoTool struct {
	session *Session
}

// NewPageInfoTool creates a new page info tool.
func NewPageInfoTool(session *Session) *PageInfoTool {
	return &PageInfoTool{session: session}
}

// Name returns the tool name.
func (t *PageInfoTool) Name() string {
	return "playwright_get_page_info"
}

// Description returns the tool description.
func (t *PageInfoTool) Description() string {
	return "Get the current page URL and title."
}

// Schema returns the tool's JSON schema.
func (t *PageInfoTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute reads the page info.
func (t *PageInfoTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	info, err := t.session.GetPageInfo()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Current page:\n- URL: %s\n- Title: %s", info.URL, info.Title), nil
}
