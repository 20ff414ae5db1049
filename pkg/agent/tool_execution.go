package agent

import (
	"context"

	"github.com/entrhq/conductor/pkg/agent/tools"
	"github.com/entrhq/conductor/pkg/types"
)

// executeToolCalls runs the calls one after another in the order the model
// returned them and appends one tool turn per call. Tool faults are narrated
// into the turn and never escape.
func (a *DefaultAgent) executeToolCalls(ctx context.Context, iteration int, calls []types.ToolCallRequest) {
	a.logger.Debugf("Executing %d tool call(s)", len(calls))

	for _, call := range calls {
		a.emitEvent(types.NewToolCallEvent(iteration, call))

		result := a.executeToolCall(ctx, call)
		if result.Success {
			a.logger.Debugf("Tool %s (%s) succeeded", call.ToolName, call.ID)
		} else {
			a.logger.Warnf("Tool %s (%s) failed: %v", call.ToolName, call.ID, result.Err)
		}

		a.memory.Add(types.NewToolTurn(call.ID, result.Narrate()))
		a.emitEvent(types.NewToolResultEvent(iteration, call.ID, result))
	}
}

// executeToolCall decodes the raw arguments and dispatches. A decode failure
// is reported exactly like a dispatch failure.
func (a *DefaultAgent) executeToolCall(ctx context.Context, call types.ToolCallRequest) types.ToolExecutionResult {
	args, err := tools.DecodeArguments(call.RawArguments)
	if err != nil {
		return types.Failed(call.ToolName, nil, types.ErrorKindArgumentParse, err.Error())
	}
	return a.registry.Dispatch(ctx, call.ToolName, args)
}
