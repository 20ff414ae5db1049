package browser

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/entrhq/conductor/pkg/agent/tools"
)

// NavigateTool navigates the page to a URL.
type NavigateTool struct {
	session *Session
}

// NewNavigateTool creates a new navigate tool.
func NewNavigateTool(session *Session) *NavigateTool {
	return &NavigateTool{session: session}
}

// Name returns the tool name.
func (t *NavigateTool) Name() string {
	return "playwright_navigate"
}

// Description returns the tool description.
func (t *NavigateTool) Description() string {
	return "Navigate the browser to a URL and wait until the network is idle."
}

// Schema returns the tool's JSON schema.
func (t *NavigateTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"url": tools.StringProperty("URL to navigate to (must include protocol, e.g., https://example.com)"),
		},
		[]string{"url"},
	)
}

// Execute navigates to the URL.
func (t *NavigateTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	target := strings.TrimSpace(tools.StringArg(args, "url"))
	if target == "" {
		return "", errors.New("url is required")
	}
	if parsed, err := url.Parse(target); err != nil || parsed.Scheme == "" {
		return "", errors.Newf("invalid URL %q: a scheme such as https:// is required", target)
	}

	info, err := t.session.Navigate(target)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Navigation successful

Page Details:
- URL: %s
- Title: %s`, info.URL, info.Title), nil
}
