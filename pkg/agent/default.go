package agent

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"

	"github.com/entrhq/conductor/pkg/agent/memory"
	"github.com/entrhq/conductor/pkg/agent/tools"
	"github.com/entrhq/conductor/pkg/llm"
	"github.com/entrhq/conductor/pkg/llm/tokenizer"
	"github.com/entrhq/conductor/pkg/logging"
	"github.com/entrhq/conductor/pkg/types"
)

const (
	// DefaultMaxIterations is the iteration budget when none is configured.
	DefaultMaxIterations = 5
	// MinIterations and MaxIterations bound every configured budget.
	MinIterations = 1
	MaxIterations = 10

	// ExhaustedMessage is returned verbatim when the budget runs out.
	ExhaustedMessage = "Reached the maximum number of iterations without completing the task."
	// EmptyResponseMessage replaces a blank final answer.
	EmptyResponseMessage = "Unable to generate a response."
)

// ErrEmptyMessage is returned by SendMessage for blank input.
var ErrEmptyMessage = errors.New("message cannot be empty")

var agentDebugLog *logging.Logger

func init() {
	var err error
	agentDebugLog, err = logging.NewLogger("agent")
	if err != nil {
		// Logger fell back to stderr due to initialization failure
		agentDebugLog.Warnf("Failed to initialize agent logger, using stderr fallback: %v", err)
	}
}

// Session is the browser session owned by an orchestrator. Cleanup is
// best-effort and never fails.
type Session interface {
	Cleanup()
}

// DefaultAgent is the standard orchestrator. Calls that run or mutate the loop
// are serialized, so a handle may be shared by concurrent callers.
type DefaultAgent struct {
	provider           llm.Provider
	registry           *tools.Registry
	memory             *memory.ConversationMemory
	session            Session
	customInstructions string
	maxIterations      atomic.Int64
	eventHandler       types.EventHandler
	tokenizer          *tokenizer.Tokenizer
	logger             *logging.Logger

	runMu sync.Mutex
}

// AgentOption is a function that configures an agent
type AgentOption func(*DefaultAgent)

// WithMaxIterations sets the iteration budget (clamped).
func WithMaxIterations(n int) AgentOption {
	return func(a *DefaultAgent) {
		a.maxIterations.Store(int64(ClampIterations(n)))
	}
}

// WithBrowserSession hands ownership of a browser session to the agent.
// Teardown cleans it up.
func WithBrowserSession(session Session) AgentOption {
	return func(a *DefaultAgent) {
		a.session = session
	}
}

// WithCustomInstructions sets custom instructions for the agent
// These are operator-provided instructions that will be added to the system prompt
func WithCustomInstructions(instructions string) AgentOption {
	return func(a *DefaultAgent) {
		a.customInstructions = instructions
	}
}

// WithEventHandler registers a callback for loop events.
func WithEventHandler(handler types.EventHandler) AgentOption {
	return func(a *DefaultAgent) {
		a.eventHandler = handler
	}
}

// WithTokenizer enables prompt token estimates in logs and events.
func WithTokenizer(tok *tokenizer.Tokenizer) AgentOption {
	return func(a *DefaultAgent) {
		a.tokenizer = tok
	}
}

// WithLogger replaces the package logger, typically with one carrying a
// conversation field.
func WithLogger(logger *logging.Logger) AgentOption {
	return func(a *DefaultAgent) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewDefaultAgent creates an orchestrator bound to provider and registry.
// A nil registry is replaced with an empty one.
func NewDefaultAgent(provider llm.Provider, registry *tools.Registry, opts ...AgentOption) (*DefaultAgent, error) {
	if provider == nil {
		return nil, errors.New("provider cannot be nil")
	}

	if registry == nil {
		var err error
		registry, err = tools.NewRegistry()
		if err != nil {
			return nil, err
		}
	}

	a := &DefaultAgent{
		provider: provider,
		registry: registry,
		memory:   memory.NewConversationMemory(),
		logger:   agentDebugLog,
	}
	a.maxIterations.Store(DefaultMaxIterations)

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// ClampIterations forces n into [MinIterations, MaxIterations].
func ClampIterations(n int) int {
	if n < MinIterations {
		return MinIterations
	}
	if n > MaxIterations {
		return MaxIterations
	}
	return n
}

// SendOption adjusts a single SendMessage call.
type SendOption func(*sendConfig)

type sendConfig struct {
	iterationLimit *int
}

// WithIterationLimit sets the iteration budget before the call runs. The new
// budget persists for later calls.
func WithIterationLimit(n int) SendOption {
	return func(c *sendConfig) {
		c.iterationLimit = &n
	}
}

// SendMessage implements Agent.
func (a *DefaultAgent) SendMessage(ctx context.Context, text string, opts ...SendOption) (string, error) {
	res, err := a.Run(ctx, text, opts...)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Run is SendMessage with the full result.
func (a *DefaultAgent) Run(ctx context.Context, text string, opts ...SendOption) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	var cfg sendConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	a.runMu.Lock()
	defer a.runMu.Unlock()

	if cfg.iterationLimit != nil {
		a.SetMaxIterations(*cfg.iterationLimit)
	}

	return a.runLoop(ctx, text)
}

// ClearHistory implements Agent.
func (a *DefaultAgent) ClearHistory() {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	a.memory.Clear()
	a.logger.Debugf("Conversation history cleared")
}

// Teardown implements Agent. It is safe to call more than once.
func (a *DefaultAgent) Teardown() {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	if a.session != nil {
		a.session.Cleanup()
	}
	a.logger.Debugf("Agent torn down")
}

// ListTools implements Agent.
func (a *DefaultAgent) ListTools() []types.ToolDescriptor {
	return a.registry.List()
}

// GetHistory implements Agent.
func (a *DefaultAgent) GetHistory() []types.Turn {
	return a.memory.GetAll()
}

// GetRecentHistory returns at most the last n turns.
func (a *DefaultAgent) GetRecentHistory(n int) []types.Turn {
	return a.memory.Last(n)
}

// SetMaxIterations implements Agent.
func (a *DefaultAgent) SetMaxIterations(n int) {
	clamped := ClampIterations(n)
	if clamped != n {
		a.logger.Warnf("maxIterations %d out of range, clamped to %d", n, clamped)
	}
	a.maxIterations.Store(int64(clamped))
}

// GetMaxIterations implements Agent.
func (a *DefaultAgent) GetMaxIterations() int {
	return int(a.maxIterations.Load())
}

// Registry exposes the tool registry the agent dispatches through.
func (a *DefaultAgent) Registry() *tools.Registry {
	return a.registry
}

// GetProvider returns the model provider.
func (a *DefaultAgent) GetProvider() llm.Provider {
	return a.provider
}

func (a *DefaultAgent) emitEvent(event *types.AgentEvent) {
	if a.eventHandler != nil && event != nil {
		a.eventHandler(event)
	}
}

var _ Agent = (*DefaultAgent)(nil)
