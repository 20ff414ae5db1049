package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/conductor/pkg/llm"
	"github.com/entrhq/conductor/pkg/types"
)

const toolCallCompletion = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o-mini",
  "choices": [{
    "index": 0,
    "finish_reason": "tool_calls",
    "message": {
      "role": "assistant",
      "content": null,
      "tool_calls": [{
        "id": "call_1",
        "type": "function",
        "function": {"name": "calculate", "arguments": "{\"expression\":\"2+2\"}"}
      }]
    }
  }],
  "usage": {"prompt_tokens": 42, "completion_tokens": 7, "total_tokens": 49}
}`

const finalCompletion = `{
  "id": "chatcmpl-2",
  "object": "chat.completion",
  "created": 1700000001,
  "model": "gpt-4o-mini",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": "2+2 = 4"}
  }],
  "usage": {"prompt_tokens": 60, "completion_tokens": 5, "total_tokens": 65}
}`

func newTestServer(t *testing.T, status int, body string, captured *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if captured != nil {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, captured)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewProvider_RequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewProvider("")
	assert.Error(t, err)
}

func TestNewProvider_Defaults(t *testing.T) {
	t.Setenv("OPENAI_BASE_URL", "http://env.example/v1")

	p, err := NewProvider("sk-test")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, p.GetModel())
	assert.Equal(t, "http://env.example/v1", p.GetBaseURL())

	p, err = NewProvider("sk-test", WithModel("gpt-4o"), WithBaseURL("http://explicit/v1"))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.GetModel())
	assert.Equal(t, "http://explicit/v1", p.GetBaseURL())
}

func TestInvoke_ToolCalls(t *testing.T) {
	var body map[string]any
	srv := newTestServer(t, http.StatusOK, toolCallCompletion, &body)

	p, err := NewProvider("sk-test", WithBaseURL(srv.URL+"/v1/"))
	require.NoError(t, err)

	resp, err := p.Invoke(context.Background(), &llm.Request{
		SystemPrompt: "system",
		History:      []types.Turn{*types.NewUserTurn("2+2 계산해줘")},
		Tools: []types.ToolDescriptor{{
			Name:        "calculate",
			Description: "Evaluate arithmetic",
			Parameters:  map[string]any{"type": "object", "properties": map[string]any{}},
		}},
	})
	require.NoError(t, err)

	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "call_1", resp.ToolCalls[0].ID)
	assert.Equal(t, "calculate", resp.ToolCalls[0].ToolName)
	assert.JSONEq(t, `{"expression":"2+2"}`, resp.ToolCalls[0].RawArguments)
	assert.Equal(t, int64(42), resp.PromptTokens)
	assert.Empty(t, resp.Content)

	assert.Equal(t, "auto", body["tool_choice"])
	assert.Equal(t, DefaultModel, body["model"])
	toolsSent, ok := body["tools"].([]any)
	require.True(t, ok)
	assert.Len(t, toolsSent, 1)
}

func TestInvoke_FinalAnswer(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, finalCompletion, nil)

	p, err := NewProvider("sk-test", WithBaseURL(srv.URL+"/v1/"))
	require.NoError(t, err)

	resp, err := p.Invoke(context.Background(), &llm.Request{
		History: []types.Turn{*types.NewUserTurn("hi")},
	})
	require.NoError(t, err)
	assert.Equal(t, "2+2 = 4", resp.Content)
	assert.False(t, resp.HasToolCalls())
}

func TestInvoke_HTTPError(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`, nil)

	p, err := NewProvider("sk-test", WithBaseURL(srv.URL+"/v1/"))
	require.NoError(t, err)

	_, err = p.Invoke(context.Background(), &llm.Request{History: []types.Turn{*types.NewUserTurn("hi")}})
	assert.Error(t, err)
}

func TestConvertToOpenAIMessages(t *testing.T) {
	history := []types.Turn{
		*types.NewUserTurn("2+2 계산해줘"),
		*types.NewAssistantTurn("", []types.ToolCallRequest{{ID: "c1", ToolName: "calculate", RawArguments: `{"expression":"2+2"}`}}),
		*types.NewToolTurn("c1", "Tool 'calculate' result:\n2+2 = 4"),
		*types.NewAssistantTurn("2+2 = 4", nil),
	}

	msgs := convertToOpenAIMessages("system", history)
	require.Len(t, msgs, 5)

	assert.NotNil(t, msgs[0].OfSystem)
	assert.NotNil(t, msgs[1].OfUser)

	require.NotNil(t, msgs[2].OfAssistant)
	require.Len(t, msgs[2].OfAssistant.ToolCalls, 1)
	assert.Equal(t, "c1", msgs[2].OfAssistant.ToolCalls[0].ID)
	assert.Equal(t, "calculate", msgs[2].OfAssistant.ToolCalls[0].Function.Name)

	require.NotNil(t, msgs[3].OfTool)
	assert.Equal(t, "c1", msgs[3].OfTool.ToolCallID)

	assert.NotNil(t, msgs[4].OfAssistant)
	assert.Empty(t, msgs[4].OfAssistant.ToolCalls)
}
