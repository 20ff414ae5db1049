package agent

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/entrhq/conductor/pkg/llm"
	"github.com/entrhq/conductor/pkg/types"
)

// runLoop drives AwaitingModel -> (ExecutingTools -> AwaitingModel)* until the
// model answers without tools or the budget is spent. Callers hold runMu.
func (a *DefaultAgent) runLoop(ctx context.Context, text string) (*Result, error) {
	maxIterations := a.GetMaxIterations()
	a.memory.Add(types.NewUserTurn(text))

	toolCalls := 0
	for iteration := 0; iteration < maxIterations; iteration++ {
		a.logger.Debugf("Iteration %d/%d", iteration+1, maxIterations)

		resp, err := a.invokeModel(ctx, iteration)
		if err != nil {
			a.emitEvent(types.NewErrorEvent(iteration, err))
			return nil, err
		}

		if !resp.HasToolCalls() {
			return a.finish(iteration, resp.Content, toolCalls), nil
		}

		calls := ensureCallIDs(resp.ToolCalls)
		a.memory.Add(types.NewAssistantTurn(resp.Content, calls))
		a.executeToolCalls(ctx, iteration, calls)
		toolCalls += len(calls)
	}

	a.logger.Warnf("Iteration budget of %d exhausted", maxIterations)
	a.memory.Add(types.NewAssistantTurn(ExhaustedMessage, nil))
	a.emitEvent(&types.AgentEvent{Type: types.EventTypeTurnEnd, Iteration: maxIterations, Content: ExhaustedMessage})

	return &Result{
		Text:       ExhaustedMessage,
		Outcome:    OutcomeExhausted,
		Iterations: maxIterations,
		ToolCalls:  toolCalls,
	}, nil
}

// finish records the final answer and ends the run.
func (a *DefaultAgent) finish(iteration int, content string, toolCalls int) *Result {
	answer := content
	if strings.TrimSpace(answer) == "" {
		answer = EmptyResponseMessage
	}

	a.memory.Add(types.NewAssistantTurn(answer, nil))
	a.emitEvent(&types.AgentEvent{Type: types.EventTypeNoToolCall, Iteration: iteration, Content: answer})
	a.emitEvent(&types.AgentEvent{Type: types.EventTypeTurnEnd, Iteration: iteration, Content: answer})

	return &Result{
		Text:       answer,
		Outcome:    OutcomeDone,
		Iterations: iteration + 1,
		ToolCalls:  toolCalls,
	}
}

// invokeModel builds the request from the current state and calls the provider.
// Failures are wrapped as *llm.ModelInvocationError and never retried.
func (a *DefaultAgent) invokeModel(ctx context.Context, iteration int) (*llm.Response, error) {
	req := &llm.Request{
		SystemPrompt: a.buildSystemPrompt(),
		History:      a.memory.GetAll(),
		Tools:        a.registry.List(),
	}

	if a.tokenizer != nil {
		promptTokens := a.tokenizer.CountRequest(req)
		a.logger.Debugf("Prompt tokens before send: %d", promptTokens)
		a.emitEvent(&types.AgentEvent{Type: types.EventTypeTokenUsage, Iteration: iteration, PromptTokens: promptTokens})
	}

	a.emitEvent(&types.AgentEvent{Type: types.EventTypeAPICallStart, Iteration: iteration})
	resp, err := a.provider.Invoke(ctx, req)
	a.emitEvent(&types.AgentEvent{Type: types.EventTypeAPICallEnd, Iteration: iteration, Error: err})

	if err != nil {
		a.logger.Errorf("Model invocation failed on iteration %d: %v", iteration+1, err)
		return nil, llm.NewModelInvocationError(a.provider.GetModel(), iteration+1, err)
	}
	if resp == nil {
		resp = &llm.Response{}
	}
	return resp, nil
}

// ensureCallIDs assigns an id to any call the model left without one so every
// tool turn can be correlated with its request.
func ensureCallIDs(calls []types.ToolCallRequest) []types.ToolCallRequest {
	out := make([]types.ToolCallRequest, len(calls))
	copy(out, calls)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = "call_" + uuid.NewString()
		}
	}
	return out
}
