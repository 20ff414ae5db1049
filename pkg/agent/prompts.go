package agent

import (
	"github.com/entrhq/conductor/pkg/agent/prompts"
)

// buildSystemPrompt constructs the system prompt with the tool catalog and custom instructions
func (a *DefaultAgent) buildSystemPrompt() string {
	builder := prompts.NewPromptBuilder().
		WithTools(a.registry.List())

	if a.customInstructions != "" {
		builder.WithCustomInstructions(a.customInstructions)
	}

	return builder.Build()
}
