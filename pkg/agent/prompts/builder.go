package prompts

import (
	"fmt"
	"strings"

	"github.com/entrhq/conductor/pkg/types"
)

// PromptBuilder constructs the system prompt sent before the conversation history
// on every model invocation.
type PromptBuilder struct {
	tools              []types.ToolDescriptor
	customInstructions string
}

// NewPromptBuilder creates a new prompt builder with default settings
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// WithTools sets the tool catalog, in the order it should be listed.
func (pb *PromptBuilder) WithTools(descriptors []types.ToolDescriptor) *PromptBuilder {
	pb.tools = descriptors
	return pb
}

// WithCustomInstructions adds operator-provided instructions ahead of the defaults.
func (pb *PromptBuilder) WithCustomInstructions(instructions string) *PromptBuilder {
	pb.customInstructions = instructions
	return pb
}

// Build assembles the prompt.
func (pb *PromptBuilder) Build() string {
	var builder strings.Builder

	if pb.customInstructions != "" {
		builder.WriteString("<custom_instructions>\n")
		builder.WriteString(pb.customInstructions)
		builder.WriteString("\n</custom_instructions>\n\n")
	}

	builder.WriteString(IdentityPrompt)
	builder.WriteString("\n\n")

	builder.WriteString("<available_tools>\n")
	builder.WriteString(FormatToolCatalog(pb.tools))
	builder.WriteString("</available_tools>\n\n")

	builder.WriteString(GuidelinesPrompt)

	if hasBrowserTools(pb.tools) {
		builder.WriteString("\n\n")
		builder.WriteString(BrowserPrompt)
	}

	return builder.String()
}

// FormatToolCatalog renders one "- name: description" line per tool.
func FormatToolCatalog(descriptors []types.ToolDescriptor) string {
	if len(descriptors) == 0 {
		return "No tools available.\n"
	}

	var builder strings.Builder
	for _, d := range descriptors {
		builder.WriteString(fmt.Sprintf("- %s: %s\n", d.Name, d.Description))
	}
	return builder.String()
}

func hasBrowserTools(descriptors []types.ToolDescriptor) bool {
	for _, d := range descriptors {
		if strings.HasPrefix(d.Name, "playwright_") {
			return true
		}
	}
	return false
}
