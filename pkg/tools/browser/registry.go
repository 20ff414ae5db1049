package browser

import (
	"github.com/entrhq/conductor/pkg/agent/tools"
)

// ToolRegistry builds the playwright_* tools bound to one session.
type ToolRegistry struct {
	session *Session
	tools   []tools.Tool
}

// NewToolRegistry creates a new browser tool registry.
func NewToolRegistry(session *Session) *ToolRegistry {
	return &ToolRegistry{
		session: session,
		tools:   make([]tools.Tool, 0),
	}
}

// RegisterTools creates and returns all browser tools in catalog order.
// This should be called by the main tool registry to get the browser tools.
func (r *ToolRegistry) RegisterTools() []tools.Tool {
	if len(r.tools) > 0 {
		return r.tools
	}

	// Lifecycle
	r.tools = append(r.tools, NewInitTool(r.session))

	// Page interaction
	r.tools = append(r.tools,
		NewNavigateTool(r.session),
		NewClickTool(r.session),
		NewTypeTool(r.session),
		NewScreenshotTool(r.session),
		NewGetTextTool(r.session),
		NewWaitTool(r.session),
		NewEvaluateTool(r.session),
		NewPageInfoTool(r.session),
	)

	r.tools = append(r.tools, NewCleanupTool(r.session))

	return r.tools
}

// GetSession returns the underlying session.
func (r *ToolRegistry) GetSession() *Session {
	return r.session
}
