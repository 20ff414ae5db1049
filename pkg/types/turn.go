package types

// Role identifies who authored a conversation turn.
type Role string

const (
	RoleUser      Role = "user"      // RoleUser marks a message submitted by the caller.
	RoleAssistant Role = "assistant" // RoleAssistant marks a model-authored turn.
	RoleTool      Role = "tool"      // RoleTool marks the result of one tool call request.
)

// Turn is one entry in the conversation log.
//
// An assistant turn may carry ToolCalls; each tool turn that follows it carries the
// ToolCallID of exactly one of those calls.
type Turn struct {
	Role       Role              `json:"role"`
	Content    string            `json:"content"`
	ToolCalls  []ToolCallRequest `json:"toolCalls,omitempty"`
	ToolCallID string            `json:"toolCallId,omitempty"`
}

// NewUserTurn creates a user turn.
func NewUserTurn(content string) *Turn {
	return &Turn{Role: RoleUser, Content: content}
}

// NewAssistantTurn creates an assistant turn. calls may be nil for a final answer.
func NewAssistantTurn(content string, calls []ToolCallRequest) *Turn {
	var copied []ToolCallRequest
	if len(calls) > 0 {
		copied = make([]ToolCallRequest, len(calls))
		copy(copied, calls)
	}
	return &Turn{Role: RoleAssistant, Content: content, ToolCalls: copied}
}

// NewToolTurn creates a tool-result turn answering the call with the given id.
func NewToolTurn(toolCallID, content string) *Turn {
	return &Turn{Role: RoleTool, Content: content, ToolCallID: toolCallID}
}

// HasToolCalls reports whether the turn requested any tool executions.
func (t *Turn) HasToolCalls() bool {
	return len(t.ToolCalls) > 0
}

// Clone returns a deep copy of the turn.
func (t *Turn) Clone() Turn {
	c := *t
	if len(t.ToolCalls) > 0 {
		c.ToolCalls = make([]ToolCallRequest, len(t.ToolCalls))
		copy(c.ToolCalls, t.ToolCalls)
	}
	return c
}
