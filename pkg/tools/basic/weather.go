package basic

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/entrhq/conductor/pkg/agent/tools"
)

// WeatherTool reports the weather for a location. The report is canned; no
// external API is called.
type WeatherTool struct{}

// NewWeatherTool creates a new weather tool.
func NewWeatherTool() *WeatherTool {
	return &WeatherTool{}
}

// Name returns the tool name.
func (t *WeatherTool) Name() string {
	return "get_weather"
}

// Description returns the tool description.
func (t *WeatherTool) Description() string {
	return "Get the current weather for a location."
}

// Schema returns the tool's JSON schema.
func (t *WeatherTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"location": tools.StringProperty("City name to check the weather for"),
		},
		[]string{"location"},
	)
}

// Execute returns the weather report.
func (t *WeatherTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	location := strings.TrimSpace(tools.StringArg(args, "location"))
	if location == "" {
		return "", errors.New("location is required")
	}
	return fmt.Sprintf("Weather in %s: sunny, 22°C", location), nil
}
