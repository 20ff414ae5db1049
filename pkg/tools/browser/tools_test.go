package browser

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/conductor/pkg/agent/tools"
	"github.com/entrhq/conductor/pkg/types"
)

func newBrowserRegistry(t *testing.T, driver *fakeDriver) (*tools.Registry, *Session) {
	t.Helper()
	session := newTestSession(t, driver)
	reg, err := tools.NewRegistry()
	require.NoError(t, err)
	require.NoError(t, reg.RegisterAll(NewToolRegistry(session).RegisterTools()...))
	return reg, session
}

func TestToolRegistryOrder(t *testing.T) {
	reg, _ := newBrowserRegistry(t, newFakeDriver())

	assert.Equal(t, []string{
		"playwright_init",
		"playwright_navigate",
		"playwright_click",
		"playwright_type",
		"playwright_screenshot",
		"playwright_get_text",
		"playwright_wait_for",
		"playwright_evaluate",
		"playwright_get_page_info",
		"playwright_cleanup",
	}, reg.Names())

	for _, d := range reg.List() {
		assert.True(t, strings.HasPrefix(d.Name, "playwright_"))
		assert.NotEmpty(t, d.Description, d.Name)
		assert.Equal(t, "object", d.Parameters["type"], d.Name)
	}
}

func TestToolRegistryReturnsSameTools(t *testing.T) {
	r := NewToolRegistry(newTestSession(t, newFakeDriver()))
	first := r.RegisterTools()
	second := r.RegisterTools()
	assert.Len(t, second, len(first))
	assert.Same(t, r.GetSession(), r.GetSession())
}

func TestBrowserToolsBeforeInit(t *testing.T) {
	reg, session := newBrowserRegistry(t, newFakeDriver())

	result := reg.Dispatch(context.Background(), "playwright_navigate", map[string]interface{}{"url": "https://example.com"})
	require.False(t, result.Success)
	assert.Equal(t, types.ErrorKindSessionNotReady, result.Err.Kind)
	assert.Contains(t, result.Err.Detail, "playwright_init")
	assert.Equal(t, StateUninitialized, session.State())
}

func TestBrowserToolsWorkflow(t *testing.T) {
	driver := newFakeDriver()
	reg, session := newBrowserRegistry(t, driver)
	ctx := context.Background()

	result := reg.Dispatch(ctx, "playwright_init", nil)
	require.True(t, result.Success, result.Narrate())
	assert.Equal(t, "Browser initialized (headless, viewport 1280x720).", result.Output)

	result = reg.Dispatch(ctx, "playwright_init", nil)
	require.True(t, result.Success)
	assert.Equal(t, "Browser is already initialized.", result.Output)
	assert.Equal(t, 1, driver.launches)

	result = reg.Dispatch(ctx, "playwright_navigate", map[string]interface{}{"url": "https://example.com"})
	require.True(t, result.Success, result.Narrate())
	assert.Contains(t, result.Output, "- URL: https://example.com")
	assert.Contains(t, result.Output, "- Title: Title of https://example.com")

	result = reg.Dispatch(ctx, "playwright_type", map[string]interface{}{"selector": "#q", "text": "go"})
	require.True(t, result.Success)
	assert.Equal(t, `Typed "go" into #q`, result.Output)

	result = reg.Dispatch(ctx, "playwright_click", map[string]interface{}{"selector": "#go"})
	require.True(t, result.Success)
	assert.Equal(t, "Clicked element: #go", result.Output)

	result = reg.Dispatch(ctx, "playwright_screenshot", nil)
	require.True(t, result.Success)
	assert.True(t, strings.HasPrefix(result.Output, "Screenshot captured: data:image/png;base64,"))

	driver.lastPage().text["h1"] = "Results"
	result = reg.Dispatch(ctx, "playwright_get_text", map[string]interface{}{"selector": "h1"})
	require.True(t, result.Success)
	assert.Equal(t, "Text content: Results", result.Output)

	result = reg.Dispatch(ctx, "playwright_wait_for", map[string]interface{}{"selector": "h1", "timeout": 1500.0})
	require.True(t, result.Success)
	assert.Equal(t, "Element appeared: h1 (timeout 1500 ms)", result.Output)

	driver.lastPage().evalResult = "Results page"
	result = reg.Dispatch(ctx, "playwright_evaluate", map[string]interface{}{"expression": "document.title"})
	require.True(t, result.Success)
	assert.Equal(t, `JavaScript result: "Results page"`, result.Output)

	result = reg.Dispatch(ctx, "playwright_get_page_info", nil)
	require.True(t, result.Success)
	assert.Equal(t, "Current page:\n- URL: https://example.com\n- Title: Title of https://example.com", result.Output)

	result = reg.Dispatch(ctx, "playwright_cleanup", nil)
	require.True(t, result.Success)
	assert.Equal(t, "Browser closed.", result.Output)
	assert.Equal(t, StateClosed, session.State())

	result = reg.Dispatch(ctx, "playwright_click", map[string]interface{}{"selector": "#go"})
	require.False(t, result.Success)
	assert.Equal(t, types.ErrorKindSessionNotReady, result.Err.Kind)
}

func TestInitToolReportsAppliedViewport(t *testing.T) {
	driver := newFakeDriver()
	session := newTestSession(t, driver, WithOptions(Options{Headless: true}))

	output, err := NewInitTool(session).Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Browser initialized (headless, viewport 1280x720).", output)
	assert.Equal(t, Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}, session.Viewport())

	custom := newTestSession(t, newFakeDriver(), WithOptions(Options{Viewport: Viewport{Width: 800, Height: 600}}))
	output, err = NewInitTool(custom).Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Browser initialized (headed, viewport 800x600).", output)
}

func TestBrowserToolArgumentChecks(t *testing.T) {
	reg, _ := newBrowserRegistry(t, newFakeDriver())
	ctx := context.Background()
	require.True(t, reg.Dispatch(ctx, "playwright_init", nil).Success)

	tests := []struct {
		name string
		tool string
		args map[string]interface{}
		kind types.ErrorKind
	}{
		{"missing url", "playwright_navigate", map[string]interface{}{}, types.ErrorKindArgumentParse},
		{"url without scheme", "playwright_navigate", map[string]interface{}{"url": "example.com"}, types.ErrorKindToolExecution},
		{"missing selector", "playwright_click", map[string]interface{}{}, types.ErrorKindArgumentParse},
		{"empty selector", "playwright_click", map[string]interface{}{"selector": ""}, types.ErrorKindToolExecution},
		{"missing text", "playwright_type", map[string]interface{}{"selector": "#q"}, types.ErrorKindArgumentParse},
		{"timeout too large", "playwright_wait_for", map[string]interface{}{"selector": "h1", "timeout": 400000.0}, types.ErrorKindToolExecution},
		{"timeout wrong type", "playwright_wait_for", map[string]interface{}{"selector": "h1", "timeout": "soon"}, types.ErrorKindArgumentParse},
		{"blank expression", "playwright_evaluate", map[string]interface{}{"expression": "  "}, types.ErrorKindToolExecution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := reg.Dispatch(ctx, tt.tool, tt.args)
			require.False(t, result.Success)
			assert.Equal(t, tt.kind, result.Err.Kind)
		})
	}
}

func TestCleanupToolReportsWarnings(t *testing.T) {
	driver := newFakeDriver()
	driver.configure = func(b *fakeBrowser) {
		b.ctx.closeErr = errors.New("context stuck")
	}
	reg, session := newBrowserRegistry(t, driver)
	ctx := context.Background()

	require.True(t, reg.Dispatch(ctx, "playwright_init", nil).Success)
	result := reg.Dispatch(ctx, "playwright_cleanup", nil)

	require.True(t, result.Success)
	assert.Contains(t, result.Output, "1 teardown warning(s)")
	assert.Contains(t, result.Output, "context stuck")
	assert.Equal(t, StateClosed, session.State())
}

func TestCleanupToolBeforeInit(t *testing.T) {
	reg, session := newBrowserRegistry(t, newFakeDriver())

	result := reg.Dispatch(context.Background(), "playwright_cleanup", nil)
	require.True(t, result.Success)
	assert.Equal(t, "Browser closed.", result.Output)
	assert.Equal(t, StateClosed, session.State())
}
