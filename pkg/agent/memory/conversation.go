// Package memory holds the per-orchestrator conversation log.
package memory

import (
	"sync"

	"github.com/entrhq/conductor/pkg/types"
)

// ConversationMemory is the ordered list of turns exchanged with the model.
// It is unbounded; callers that report history truncate on read with Last.
type ConversationMemory struct {
	turns []types.Turn
	mu    sync.RWMutex
}

// NewConversationMemory creates an empty conversation log.
func NewConversationMemory() *ConversationMemory {
	return &ConversationMemory{
		turns: make([]types.Turn, 0, 16),
	}
}

// Add appends a turn. The turn is copied so later mutations by the caller
// do not leak into the log.
func (m *ConversationMemory) Add(turn *types.Turn) {
	if turn == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.turns = append(m.turns, turn.Clone())
}

// GetAll returns a copy of every turn in order.
func (m *ConversationMemory) GetAll() []types.Turn {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return cloneTurns(m.turns)
}

// Last returns a copy of the most recent n turns, or all of them when n <= 0
// or n exceeds the log length.
func (m *ConversationMemory) Last(n int) []types.Turn {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n <= 0 || n >= len(m.turns) {
		return cloneTurns(m.turns)
	}
	return cloneTurns(m.turns[len(m.turns)-n:])
}

// Clear empties the log in place.
func (m *ConversationMemory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.turns)
	m.turns = m.turns[:0]
}

// Len returns the number of turns.
func (m *ConversationMemory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.turns)
}

func cloneTurns(src []types.Turn) []types.Turn {
	out := make([]types.Turn, len(src))
	for i := range src {
		out[i] = src[i].Clone()
	}
	return out
}
