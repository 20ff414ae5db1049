package basic

import (
	"context"
	"time"

	"github.com/entrhq/conductor/pkg/agent/tools"
)

// TimeFormat is the layout used for the reported time.
const TimeFormat = "2006-01-02 15:04:05 MST"

// TimeTool reports the current local time.
type TimeTool struct {
	clock Clock
}

// NewTimeTool creates a new time tool. A nil clock uses time.Now.
func NewTimeTool(clock Clock) *TimeTool {
	if clock == nil {
		clock = time.Now
	}
	return &TimeTool{clock: clock}
}

// Name returns the tool name.
func (t *TimeTool) Name() string {
	return "get_time"
}

// Description returns the tool description.
func (t *TimeTool) Description() string {
	return "Get the current local date and time."
}

// Schema returns the tool's JSON schema.
func (t *TimeTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute returns the current time.
func (t *TimeTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	return "Current time: " + t.clock().Format(TimeFormat), nil
}
