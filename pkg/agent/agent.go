// Package agent provides the orchestrator: a bounded loop that alternates
// between invoking a model and executing the tools it requests.
//
// An orchestrator is a handle with caller-managed lifetime. Construct one per
// logical conversation and release it with Teardown:
//
//	registry, _ := tools.NewRegistry()
//	_ = registry.RegisterAll(basic.NewCalculateTool())
//	ag, err := agent.NewDefaultAgent(provider, registry, agent.WithMaxIterations(5))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ag.Teardown()
//
//	answer, err := ag.SendMessage(ctx, "What is 2+2?")
//
// The package is organized with subpackages for specialized functionality:
//   - memory: conversation log
//   - prompts: system prompt assembly
//   - tools: tool interface, registry and argument decoding
package agent

import (
	"context"

	"github.com/entrhq/conductor/pkg/types"
)

// Agent is the orchestrator surface consumed by the surrounding application.
type Agent interface {
	// SendMessage appends text as a user turn, runs the loop and returns either
	// the model's final answer or ExhaustedMessage. A model invocation failure
	// is returned as *llm.ModelInvocationError; tool faults never are.
	SendMessage(ctx context.Context, text string, opts ...SendOption) (string, error)

	// ClearHistory wipes the conversation log in place.
	ClearHistory()

	// Teardown releases the browser session and any per-instance resources.
	Teardown()

	// ListTools returns the tool catalog in registration order.
	ListTools() []types.ToolDescriptor

	// GetHistory returns a snapshot of the conversation log.
	GetHistory() []types.Turn

	// SetMaxIterations sets the iteration budget, clamped to [MinIterations, MaxIterations].
	SetMaxIterations(n int)

	// GetMaxIterations returns the current iteration budget.
	GetMaxIterations() int
}

// Outcome records how a loop run ended.
type Outcome string

const (
	// OutcomeDone means the model answered without requesting tools.
	OutcomeDone Outcome = "done"
	// OutcomeExhausted means the iteration budget ran out first.
	OutcomeExhausted Outcome = "exhausted"
)

// Result is the full outcome of one SendMessage call.
type Result struct {
	Text       string
	Outcome    Outcome
	Iterations int
	ToolCalls  int
}
