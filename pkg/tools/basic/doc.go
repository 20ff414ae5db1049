// Package basic provides the example tools registered with every orchestrator:
// a canned weather report, a safe arithmetic evaluator and the current time.
package basic

import (
	"time"

	"github.com/entrhq/conductor/pkg/agent/tools"
)

// Clock returns the current time. Tests inject a fixed clock.
type Clock func() time.Time

// Tools returns the example tools in catalog order. A nil clock uses time.Now.
func Tools(clock Clock) []tools.Tool {
	return []tools.Tool{
		NewWeatherTool(),
		NewCalculateTool(),
		NewTimeTool(clock),
	}
}
