package tools

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

// maxArgumentsSize bounds the raw argument text accepted from the model.
const maxArgumentsSize = 1 << 20

// DecodeArguments decodes the raw JSON arguments of a tool call request.
// Blank input and a JSON null decode to an empty object; anything other than a
// JSON object is rejected with ErrArgumentParse.
func DecodeArguments(raw string) (map[string]interface{}, error) {
	if len(raw) > maxArgumentsSize {
		return nil, errors.Wrapf(ErrArgumentParse, "arguments exceed %d bytes", maxArgumentsSize)
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return map[string]interface{}{}, nil
	}

	var args map[string]interface{}
	if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "invalid JSON arguments %s", snippet(trimmed)), ErrArgumentParse)
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	return args, nil
}

// StringArg reads an optional string argument.
func StringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// NumberArg reads an optional numeric argument, reporting whether it was present.
func NumberArg(args map[string]interface{}, key string) (float64, bool) {
	switch v := args[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func snippet(s string) string {
	if len(s) > 120 {
		return s[:120] + "..."
	}
	return s
}
