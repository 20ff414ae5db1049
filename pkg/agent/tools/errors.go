package tools

import (
	"github.com/cockroachdb/errors"

	"github.com/entrhq/conductor/pkg/types"
)

var (
	// ErrUnknownTool is returned when dispatching a name that was never registered.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrDuplicateTool is returned by Register when the name is already taken.
	ErrDuplicateTool = errors.New("duplicate tool")

	// ErrArgumentParse is returned when raw arguments cannot be decoded or fail the schema.
	ErrArgumentParse = errors.New("argument parse error")

	// ErrToolExecution wraps failures reported by a tool executor.
	ErrToolExecution = errors.New("tool execution error")

	// ErrSessionNotReady is returned by session-backed tools used outside an active session.
	ErrSessionNotReady = errors.New("session not ready")
)

// KindOf maps an error onto the tool fault taxonomy. Errors outside the
// taxonomy are reported as execution errors.
func KindOf(err error) types.ErrorKind {
	switch {
	case errors.Is(err, ErrUnknownTool):
		return types.ErrorKindUnknownTool
	case errors.Is(err, ErrArgumentParse):
		return types.ErrorKindArgumentParse
	case errors.Is(err, ErrSessionNotReady):
		return types.ErrorKindSessionNotReady
	default:
		return types.ErrorKindToolExecution
	}
}
