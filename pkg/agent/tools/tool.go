package tools

import (
	"context"
)

// Tool represents a capability the orchestrator can run on behalf of the model.
// Tools are requested by the model through native function calls; their
// arguments arrive as JSON, are decoded into a map and validated against
// Schema before Execute is called.
type Tool interface {
	// Name returns the unique identifier for this tool (e.g., "calculate")
	Name() string

	// Description returns a human-readable description of what this tool does.
	// It is embedded in the system prompt and in the function catalog.
	Description() string

	// Schema returns the JSON schema for this tool's input parameters
	Schema() map[string]interface{}

	// Execute runs the tool with already decoded and validated arguments.
	// The returned string is narrated back to the model verbatim.
	Execute(ctx context.Context, args map[string]interface{}) (string, error)
}

// BaseToolSchema creates a common JSON schema structure for a tool
// with the given properties and required fields
func BaseToolSchema(properties map[string]interface{}, required []string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// StringProperty is a shorthand for a string schema property.
func StringProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// NumberProperty is a shorthand for a number schema property.
func NumberProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": description,
	}
}
