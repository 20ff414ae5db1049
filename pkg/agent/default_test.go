package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/conductor/pkg/agent/tools"
	"github.com/entrhq/conductor/pkg/llm"
	"github.com/entrhq/conductor/pkg/types"
)

// mockProvider is a testify mock of llm.Provider.
type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Invoke(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*llm.Response)
	return resp, args.Error(1)
}

func (m *mockProvider) GetModel() string {
	return "mock-model"
}

// fakeSession counts cleanups.
type fakeSession struct {
	cleanups int
}

func (s *fakeSession) Cleanup() { s.cleanups++ }

func newTestAgent(t *testing.T, provider llm.Provider, toolList []tools.Tool, opts ...AgentOption) *DefaultAgent {
	t.Helper()
	registry, err := tools.NewRegistry()
	require.NoError(t, err)
	require.NoError(t, registry.RegisterAll(toolList...))

	ag, err := NewDefaultAgent(provider, registry, opts...)
	require.NoError(t, err)
	return ag
}

func TestNewDefaultAgent(t *testing.T) {
	t.Run("RequiresProvider", func(t *testing.T) {
		_, err := NewDefaultAgent(nil, nil)
		assert.Error(t, err)
	})

	t.Run("Defaults", func(t *testing.T) {
		ag, err := NewDefaultAgent(&mockProvider{}, nil)
		require.NoError(t, err)

		assert.Equal(t, DefaultMaxIterations, ag.GetMaxIterations())
		assert.Empty(t, ag.GetHistory())
		assert.Empty(t, ag.ListTools())
		assert.NotNil(t, ag.Registry())
	})

	t.Run("MaxIterationsOptionIsClamped", func(t *testing.T) {
		ag, err := NewDefaultAgent(&mockProvider{}, nil, WithMaxIterations(42))
		require.NoError(t, err)
		assert.Equal(t, MaxIterations, ag.GetMaxIterations())
	})
}

func TestClampIterations(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{in: -3, want: 1},
		{in: 0, want: 1},
		{in: 1, want: 1},
		{in: 5, want: 5},
		{in: 10, want: 10},
		{in: 11, want: 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampIterations(tt.in), "ClampIterations(%d)", tt.in)
	}
}

func TestSetMaxIterations(t *testing.T) {
	ag := newTestAgent(t, &mockProvider{}, nil)

	ag.SetMaxIterations(7)
	assert.Equal(t, 7, ag.GetMaxIterations())

	ag.SetMaxIterations(0)
	assert.Equal(t, 1, ag.GetMaxIterations())

	ag.SetMaxIterations(100)
	assert.Equal(t, 10, ag.GetMaxIterations())
}

func TestClearHistory(t *testing.T) {
	provider := &mockProvider{}
	provider.On("Invoke", mock.Anything, mock.Anything).Return(&llm.Response{Content: "hello"}, nil)

	ag := newTestAgent(t, provider, nil)
	_, err := ag.SendMessage(context.Background(), "hi")
	require.NoError(t, err)
	require.NotEmpty(t, ag.GetHistory())

	ag.ClearHistory()
	assert.Empty(t, ag.GetHistory())

	ag.ClearHistory()
	assert.Empty(t, ag.GetHistory())
}

func TestTeardown(t *testing.T) {
	session := &fakeSession{}
	ag := newTestAgent(t, &mockProvider{}, nil, WithBrowserSession(session))

	ag.Teardown()
	ag.Teardown()
	assert.Equal(t, 2, session.cleanups)

	noSession := newTestAgent(t, &mockProvider{}, nil)
	assert.NotPanics(t, noSession.Teardown)
}

func TestListToolsOrder(t *testing.T) {
	ag := newTestAgent(t, &mockProvider{}, []tools.Tool{
		&recordingTool{name: "get_weather"},
		&recordingTool{name: "calculate"},
		&recordingTool{name: "get_time"},
	})

	var names []string
	for _, d := range ag.ListTools() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"get_weather", "calculate", "get_time"}, names)
}

func TestGetHistoryIsSnapshot(t *testing.T) {
	provider := &mockProvider{}
	provider.On("Invoke", mock.Anything, mock.Anything).Return(&llm.Response{Content: "hello"}, nil)

	ag := newTestAgent(t, provider, nil)
	_, err := ag.SendMessage(context.Background(), "hi")
	require.NoError(t, err)

	history := ag.GetHistory()
	history[0].Content = "changed"
	assert.Equal(t, "hi", ag.GetHistory()[0].Content)
	assert.Equal(t, types.RoleUser, ag.GetHistory()[0].Role)
}
