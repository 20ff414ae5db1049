package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/conductor/pkg/agent"
	"github.com/entrhq/conductor/pkg/config"
	"github.com/entrhq/conductor/pkg/llm/openai"
	"github.com/entrhq/conductor/pkg/tools/browser"
)

func testDeps(t *testing.T, cfg *config.Config) *factoryDeps {
	t.Helper()
	provider, err := openai.NewProvider("sk-test", openai.WithBaseURL("http://127.0.0.1:1"))
	require.NoError(t, err)
	return &factoryDeps{
		cfg:      cfg,
		provider: provider,
		driver:   browser.NewPlaywrightDriver(browser.WithInstall(false)),
	}
}

func toolNames(ag agent.Agent) []string {
	var names []string
	for _, d := range ag.ListTools() {
		names = append(names, d.Name)
	}
	return names
}

func TestNewAgentRegistersAllTools(t *testing.T) {
	cfg := config.Default()
	ag, err := testDeps(t, cfg).newAgent()
	require.NoError(t, err)
	defer ag.Teardown()

	names := toolNames(ag)
	require.Len(t, names, 13)
	assert.Equal(t, []string{"get_weather", "calculate", "get_time", "playwright_init"}, names[:4])
	assert.Equal(t, "playwright_cleanup", names[12])
	assert.Equal(t, cfg.Agent.MaxIterations, ag.GetMaxIterations())
}

func TestNewAgentWithoutBrowser(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.Disabled = []string{"playwright_*"}

	ag, err := testDeps(t, cfg).newAgent()
	require.NoError(t, err)
	defer ag.Teardown()

	assert.Equal(t, []string{"get_weather", "calculate", "get_time"}, toolNames(ag))
}

func TestNewAgentDisablesSingleTool(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.Disabled = []string{"get_time", "playwright_screenshot"}

	ag, err := testDeps(t, cfg).newAgent()
	require.NoError(t, err)
	defer ag.Teardown()

	names := toolNames(ag)
	assert.NotContains(t, names, "get_time")
	assert.NotContains(t, names, "playwright_screenshot")
	assert.Contains(t, names, "playwright_navigate")
}

func TestNewAgentIndependentHandles(t *testing.T) {
	deps := testDeps(t, config.Default())

	a, err := deps.newAgent()
	require.NoError(t, err)
	b, err := deps.newAgent()
	require.NoError(t, err)

	a.SetMaxIterations(9)
	assert.Equal(t, 9, a.GetMaxIterations())
	assert.Equal(t, 5, b.GetMaxIterations())

	a.Teardown()
	b.Teardown()
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	applyFlags(cfg, &CLIConfig{Addr: ":7000", MaxIterations: 3})
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 3, cfg.Agent.MaxIterations)

	cfg = config.Default()
	applyFlags(cfg, &CLIConfig{})
	assert.Equal(t, config.DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, 5, cfg.Agent.MaxIterations)
}

func TestApplyFlagsOutOfRangeIterationsAreClamped(t *testing.T) {
	cfg := config.Default()
	applyFlags(cfg, &CLIConfig{MaxIterations: 20})
	require.NoError(t, cfg.Validate())
	assert.Equal(t, agent.MaxIterations, cfg.Agent.MaxIterations)

	cfg = config.Default()
	applyFlags(cfg, &CLIConfig{MaxIterations: -4})
	require.NoError(t, cfg.Validate())
	assert.Equal(t, agent.MinIterations, cfg.Agent.MaxIterations)
}

func TestLoadEnvFile(t *testing.T) {
	assert.NoError(t, loadEnvFile(""))
	assert.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CONDUCTOR_TEST_VALUE=from-dotenv\n"), 0600))
	t.Setenv("CONDUCTOR_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("CONDUCTOR_TEST_VALUE"))

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "from-dotenv", os.Getenv("CONDUCTOR_TEST_VALUE"))
}
