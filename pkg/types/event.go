package types

// AgentEventType defines the type of event emitted by the orchestrator.
type AgentEventType string

const (
	EventTypeAPICallStart    AgentEventType = "api_call_start"    // EventTypeAPICallStart indicates the model is about to be invoked.
	EventTypeAPICallEnd      AgentEventType = "api_call_end"      // EventTypeAPICallEnd indicates a model invocation has returned.
	EventTypeToolCall        AgentEventType = "tool_call"         // EventTypeToolCall indicates a tool is about to be dispatched.
	EventTypeToolResult      AgentEventType = "tool_result"       // EventTypeToolResult indicates a successful tool call result.
	EventTypeToolResultError AgentEventType = "tool_result_error" // EventTypeToolResultError indicates a tool call resulted in an error.
	EventTypeNoToolCall      AgentEventType = "no_tool_call"      // EventTypeNoToolCall indicates the model answered without requesting tools.
	EventTypeTokenUsage      AgentEventType = "token_usage"       // EventTypeTokenUsage carries the estimated prompt size.
	EventTypeTurnEnd         AgentEventType = "turn_end"          // EventTypeTurnEnd indicates SendMessage has finished.
	EventTypeError           AgentEventType = "error"             // EventTypeError indicates a fatal loop error.
)

// AgentEvent represents an event emitted by the orchestrator during a SendMessage call.
type AgentEvent struct {
	// Type indicates the kind of event.
	Type AgentEventType

	// Iteration is the zero-based loop iteration the event belongs to.
	Iteration int

	// ToolName is the name of the tool being called (for tool events).
	ToolName string

	// ToolCallID correlates tool events with the assistant turn that requested them.
	ToolCallID string

	// Content holds text content (final answer, tool output).
	Content string

	// Error contains error information for error events.
	Error error

	// PromptTokens is the estimated prompt size (for token usage events).
	PromptTokens int
}

// EventHandler receives orchestrator events. It is called synchronously from the loop.
type EventHandler func(*AgentEvent)

// NewToolCallEvent creates a tool call event.
func NewToolCallEvent(iteration int, call ToolCallRequest) *AgentEvent {
	return &AgentEvent{
		Type:       EventTypeToolCall,
		Iteration:  iteration,
		ToolName:   call.ToolName,
		ToolCallID: call.ID,
		Content:    call.RawArguments,
	}
}

// NewToolResultEvent creates a tool result event, choosing the error variant for failures.
func NewToolResultEvent(iteration int, callID string, result ToolExecutionResult) *AgentEvent {
	ev := &AgentEvent{
		Type:       EventTypeToolResult,
		Iteration:  iteration,
		ToolName:   result.ToolName,
		ToolCallID: callID,
		Content:    result.Output,
	}
	if !result.Success {
		ev.Type = EventTypeToolResultError
		ev.Content = ""
		if result.Err != nil {
			ev.Error = result.Err
		}
	}
	return ev
}

// NewErrorEvent creates an error event.
func NewErrorEvent(iteration int, err error) *AgentEvent {
	return &AgentEvent{Type: EventTypeError, Iteration: iteration, Error: err}
}

// IsError reports whether the event signals a failure.
func (e *AgentEvent) IsError() bool {
	return e.Type == EventTypeError || e.Type == EventTypeToolResultError
}
