package server

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/entrhq/conductor/pkg/agent"
	"github.com/entrhq/conductor/pkg/llm"
	"github.com/entrhq/conductor/pkg/types"
)

// Chat actions.
const (
	ActionClear      = "clear"
	ActionDisconnect = "disconnect"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
	Action         string `json:"action"`
	MaxIterations  *int   `json:"maxIterations"`
}

// ChatResponse is the success body of POST /api/chat.
type ChatResponse struct {
	ConversationID      string                 `json:"conversationId"`
	Response            string                 `json:"response"`
	Action              string                 `json:"action,omitempty"`
	Tools               []types.ToolDescriptor `json:"tools,omitempty"`
	ConversationHistory []types.Turn           `json:"conversationHistory,omitempty"`
	MaxIterations       int                    `json:"maxIterations,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "conversations": s.Conversations()})
}

func (s *Server) handleTools(c *gin.Context) {
	h, err := s.factory()
	if err != nil {
		s.logger.Errorf("Tool listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list tools"})
		return
	}
	defer h.Teardown()

	c.JSON(http.StatusOK, gin.H{"tools": h.ListTools()})
}

func (s *Server) handleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	switch req.Action {
	case ActionClear:
		if h := s.release(req.ConversationID); h != nil {
			h.ClearHistory()
			h.Teardown()
			s.logger.Infof("Conversation %s cleared", req.ConversationID)
		}
		c.JSON(http.StatusOK, ChatResponse{
			ConversationID: req.ConversationID,
			Response:       "Conversation history cleared.",
			Action:         "cleared",
		})
		return
	case ActionDisconnect:
		if h := s.release(req.ConversationID); h != nil {
			h.Teardown()
			s.logger.Infof("Conversation %s disconnected", req.ConversationID)
		}
		c.JSON(http.StatusOK, ChatResponse{
			ConversationID: req.ConversationID,
			Response:       "Disconnected.",
			Action:         "disconnected",
		})
		return
	case "":
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown action: " + req.Action})
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "message is required"})
		return
	}

	id := req.ConversationID
	if id == "" {
		id = uuid.New().String()
	}

	h, err := s.acquire(id)
	if err != nil {
		s.logger.Errorf("Conversation %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to start conversation"})
		return
	}

	var opts []agent.SendOption
	if req.MaxIterations != nil {
		opts = append(opts, agent.WithIterationLimit(*req.MaxIterations))
	}

	answer, err := h.SendMessage(c.Request.Context(), req.Message, opts...)
	if err != nil {
		s.logger.Errorf("Conversation %s failed: %v", id, err)
		s.discard(id, h)

		resp := ErrorResponse{Error: "the request could not be completed"}
		if errors.Is(err, llm.ErrModelInvocation) {
			resp.Kind = "ModelInvocationError"
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{
		ConversationID:      id,
		Response:            answer,
		Tools:               h.ListTools(),
		ConversationHistory: recentTurns(h.GetHistory(), s.historyLimit),
		MaxIterations:       h.GetMaxIterations(),
	})
}
