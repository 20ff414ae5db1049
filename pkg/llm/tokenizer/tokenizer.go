// Package tokenizer estimates prompt sizes for logging and diagnostics.
package tokenizer

import (
	"github.com/cockroachdb/errors"
	"github.com/pkoukk/tiktoken-go"

	"github.com/entrhq/conductor/pkg/llm"
	"github.com/entrhq/conductor/pkg/types"
)

// DefaultEncoding is used by the gpt-4o and gpt-3.5 model families.
const DefaultEncoding = "cl100k_base"

// perMessageOverhead approximates the framing tokens the chat format adds per message.
const perMessageOverhead = 4

// Tokenizer counts tokens with a tiktoken encoding.
type Tokenizer struct {
	encoding *tiktoken.Tiktoken
}

// New loads the named encoding. Loading may require network access the first
// time; callers treat a failure as "no estimates available".
func New(encoding string) (*Tokenizer, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load encoding %q", encoding)
	}
	return &Tokenizer{encoding: enc}, nil
}

// CountTokens returns the token count of text. A nil tokenizer counts zero.
func (t *Tokenizer) CountTokens(text string) int {
	if t == nil || t.encoding == nil || text == "" {
		return 0
	}
	return len(t.encoding.Encode(text, nil, nil))
}

// CountTurns estimates the tokens used by a conversation.
func (t *Tokenizer) CountTurns(turns []types.Turn) int {
	if t == nil {
		return 0
	}
	total := 0
	for _, turn := range turns {
		total += perMessageOverhead + t.CountTokens(turn.Content)
		for _, call := range turn.ToolCalls {
			total += t.CountTokens(call.ToolName) + t.CountTokens(call.RawArguments)
		}
	}
	return total
}

// CountRequest estimates the prompt tokens of a model request, excluding tool schemas.
func (t *Tokenizer) CountRequest(req *llm.Request) int {
	if t == nil || req == nil {
		return 0
	}
	return perMessageOverhead + t.CountTokens(req.SystemPrompt) + t.CountTurns(req.History)
}
