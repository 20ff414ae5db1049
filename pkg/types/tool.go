package types

import "fmt"

// ToolCallRequest is a model-issued instruction to run a tool.
// RawArguments is the unparsed JSON text produced by the model.
type ToolCallRequest struct {
	ID           string `json:"id"`
	ToolName     string `json:"toolName"`
	RawArguments string `json:"rawArguments"`
}

// ToolDescriptor describes a registered tool to the model and to reporting.
type ToolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"inputSchema"`
}

// ErrorKind classifies a recoverable tool fault.
type ErrorKind string

const (
	ErrorKindUnknownTool     ErrorKind = "UnknownTool"        // no tool registered under the name
	ErrorKindArgumentParse   ErrorKind = "ArgumentParseError" // arguments could not be decoded or failed the schema
	ErrorKindToolExecution   ErrorKind = "ToolExecutionError" // the executor itself failed
	ErrorKindSessionNotReady ErrorKind = "SessionNotReady"    // a browser tool ran without an active session
)

// ToolError is the failure half of a ToolExecutionResult.
type ToolError struct {
	Kind   ErrorKind `json:"kind"`
	Detail string    `json:"detail"`
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// ToolExecutionResult is the tagged outcome of one dispatch: either Output is set and
// Success is true, or Err is set.
type ToolExecutionResult struct {
	ToolName  string         `json:"toolName"`
	Arguments map[string]any `json:"arguments,omitempty"`
	Success   bool           `json:"success"`
	Output    string         `json:"output,omitempty"`
	Err       *ToolError     `json:"error,omitempty"`
}

// Succeeded builds a successful result.
func Succeeded(toolName string, args map[string]any, output string) ToolExecutionResult {
	return ToolExecutionResult{ToolName: toolName, Arguments: args, Success: true, Output: output}
}

// Failed builds a failed result of the given kind.
func Failed(toolName string, args map[string]any, kind ErrorKind, detail string) ToolExecutionResult {
	return ToolExecutionResult{
		ToolName:  toolName,
		Arguments: args,
		Err:       &ToolError{Kind: kind, Detail: detail},
	}
}

// Narrate renders the result as the text of a tool turn so the model can read it.
func (r ToolExecutionResult) Narrate() string {
	if r.Success {
		if r.Output == "" {
			return fmt.Sprintf("Tool '%s' result: (no output)", r.ToolName)
		}
		return fmt.Sprintf("Tool '%s' result:\n%s", r.ToolName, r.Output)
	}
	if r.Err == nil {
		return fmt.Sprintf("Tool '%s' failed.", r.ToolName)
	}
	return fmt.Sprintf("Tool '%s' failed (%s): %s", r.ToolName, r.Err.Kind, r.Err.Detail)
}
