// Package llm defines the contract between the orchestrator and a chat model.
//
// Example usage:
//
//	provider, err := openai.NewProvider(
//	    os.Getenv("OPENAI_API_KEY"),
//	    openai.WithModel("gpt-4o-mini"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := provider.Invoke(ctx, &llm.Request{
//	    SystemPrompt: "You are a helpful assistant.",
//	    History:      []types.Turn{*types.NewUserTurn("Hello!")},
//	})
package llm

import (
	"context"

	"github.com/entrhq/conductor/pkg/types"
)

// Request is one model invocation: the system prompt, the full conversation
// history and the tool catalog the model may call. Tool choice is automatic.
type Request struct {
	SystemPrompt string
	History      []types.Turn
	Tools        []types.ToolDescriptor
}

// Response is the model's reply. ToolCalls is empty when Content is a final answer.
type Response struct {
	Content   string
	ToolCalls []types.ToolCallRequest

	// PromptTokens and CompletionTokens are reported by the provider when known.
	PromptTokens     int64
	CompletionTokens int64
}

// HasToolCalls reports whether the model asked for any tool executions.
func (r *Response) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}

// Provider defines the interface for LLM integrations.
//
// Providers translate a Request into the vendor wire format and back. They do
// not retry; a failed call is returned as is and the orchestrator surfaces it
// as a ModelInvocationError.
type Provider interface {
	// Invoke sends one request and waits for the complete response.
	Invoke(ctx context.Context, req *Request) (*Response, error)

	// GetModel returns the model name being used.
	GetModel() string
}
