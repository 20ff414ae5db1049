// Package server exposes orchestrators over HTTP. Every conversation id owns
// its own orchestrator handle; handles are created on first use and torn down
// on clear, disconnect, model failure or server shutdown.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/entrhq/conductor/pkg/agent"
	"github.com/entrhq/conductor/pkg/logging"
	"github.com/entrhq/conductor/pkg/types"
)

// DefaultHistoryLimit is the number of recent turns returned by the chat endpoint.
const DefaultHistoryLimit = 10

// shutdownTimeout bounds how long Run waits for in-flight requests.
const shutdownTimeout = 10 * time.Second

// Factory creates a fresh orchestrator handle for a new conversation.
type Factory func() (agent.Agent, error)

// Server routes chat requests to per-conversation orchestrators.
type Server struct {
	factory      Factory
	historyLimit int
	logger       *logging.Logger
	engine       *gin.Engine

	mu            sync.Mutex
	conversations map[string]agent.Agent
}

// Option configures a Server.
type Option func(*Server)

// WithHistoryLimit sets how many recent turns the chat endpoint returns.
func WithHistoryLimit(n int) Option {
	return func(s *Server) {
		if n >= 0 {
			s.historyLimit = n
		}
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a server. factory must not be nil.
func New(factory Factory, opts ...Option) (*Server, error) {
	if factory == nil {
		return nil, errors.New("server: factory cannot be nil")
	}

	s := &Server{
		factory:       factory,
		historyLimit:  DefaultHistoryLimit,
		logger:        logging.Nop(),
		conversations: make(map[string]agent.Agent),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())

	engine.GET("/healthz", s.handleHealth)

	api := engine.Group("/api")
	{
		api.POST("/chat", s.handleChat)
		api.GET("/tools", s.handleTools)
	}
	return engine
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then drains requests and tears
// down every conversation.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.Shutdown()
		if ok {
			return errors.Wrap(err, "listen failed")
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Infof("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	s.Shutdown()
	if err != nil {
		return errors.Wrap(err, "server shutdown failed")
	}
	return nil
}

// Shutdown tears down every live conversation.
func (s *Server) Shutdown() {
	s.mu.Lock()
	handles := s.conversations
	s.conversations = make(map[string]agent.Agent)
	s.mu.Unlock()

	for id, h := range handles {
		h.Teardown()
		s.logger.Debugf("Conversation %s torn down", id)
	}
}

// Conversations returns the number of live conversations.
func (s *Server) Conversations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conversations)
}

// acquire returns the handle for id, creating it when absent.
func (s *Server) acquire(id string) (agent.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h, ok := s.conversations[id]; ok {
		return h, nil
	}
	h, err := s.factory()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create orchestrator")
	}
	s.conversations[id] = h
	s.logger.Infof("Conversation %s started", id)
	return h, nil
}

// release removes the handle for id and returns it, or nil if absent.
func (s *Server) release(id string) agent.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.conversations[id]
	if !ok {
		return nil
	}
	delete(s.conversations, id)
	return h
}

// discard drops the handle only if it is still the one registered under id.
func (s *Server) discard(id string, h agent.Agent) {
	s.mu.Lock()
	if current, ok := s.conversations[id]; ok && current == h {
		delete(s.conversations, id)
	}
	s.mu.Unlock()
	h.Teardown()
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debugf("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func recentTurns(history []types.Turn, n int) []types.Turn {
	if n <= 0 || len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
