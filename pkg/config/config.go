// Package config loads conductor settings from a YAML file with environment
// overrides. Precedence, highest first: command line flags, environment
// variables, config file, defaults.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gobwas/glob"
	"github.com/rs/zerolog"

	"github.com/entrhq/conductor/pkg/agent"
	"github.com/entrhq/conductor/pkg/llm/openai"
	"github.com/entrhq/conductor/pkg/logging"
	"github.com/entrhq/conductor/pkg/tools/browser"
)

var configLog *logging.Logger

func init() {
	var err error
	configLog, err = logging.NewLogger("config")
	if err != nil {
		configLog.Warnf("Failed to initialize config logger, using stderr fallback: %v", err)
	}
}

// Environment variables read by ApplyEnv.
const (
	EnvAPIKey        = "OPENAI_API_KEY"
	EnvBaseURL       = "OPENAI_BASE_URL"
	EnvModel         = "CONDUCTOR_MODEL"
	EnvAddr          = "CONDUCTOR_ADDR"
	EnvMaxIterations = "CONDUCTOR_MAX_ITERATIONS"
	EnvLogLevel      = "CONDUCTOR_LOG_LEVEL"
	EnvHeadless      = "CONDUCTOR_HEADLESS"
)

const (
	// DefaultAddr is the HTTP listen address.
	DefaultAddr = ":8080"

	// DefaultHistoryLimit is the number of turns echoed back by the chat endpoint.
	DefaultHistoryLimit = 10
)

// Config is the full conductor configuration.
type Config struct {
	LLM     LLMConfig     `yaml:"llm"`
	Server  ServerConfig  `yaml:"server"`
	Agent   AgentConfig   `yaml:"agent"`
	Tools   ToolsConfig   `yaml:"tools"`
	Browser BrowserConfig `yaml:"browser"`
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig selects the model provider.
type LLMConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url,omitempty"`
	APIKey  string `yaml:"api_key,omitempty"`
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	HistoryLimit int    `yaml:"history_limit"`
}

// AgentConfig configures every orchestrator the process creates.
type AgentConfig struct {
	MaxIterations      int    `yaml:"max_iterations"`
	CustomInstructions string `yaml:"custom_instructions,omitempty"`

	// EstimateTokens enables prompt token estimates in the debug log.
	EstimateTokens bool `yaml:"estimate_tokens"`
}

// ToolsConfig controls which tools are registered.
type ToolsConfig struct {
	// Disabled holds glob patterns, e.g. "playwright_*".
	Disabled []string `yaml:"disabled,omitempty"`
}

// BrowserConfig configures the Playwright session.
type BrowserConfig struct {
	Headless       bool     `yaml:"headless"`
	ViewportWidth  int      `yaml:"viewport_width"`
	ViewportHeight int      `yaml:"viewport_height"`
	Timeout        float64  `yaml:"timeout_ms"`
	Args           []string `yaml:"args,omitempty"`

	// Install downloads the Playwright browsers on first launch.
	Install bool `yaml:"install"`
}

// LoggingConfig configures pkg/logging. The log directory is taken from
// CONDUCTOR_LOG_DIR because loggers open their file at package init.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	browserDefaults := browser.DefaultOptions()
	return &Config{
		LLM: LLMConfig{
			Model: openai.DefaultModel,
		},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			HistoryLimit: DefaultHistoryLimit,
		},
		Agent: AgentConfig{
			MaxIterations: agent.DefaultMaxIterations,
		},
		Browser: BrowserConfig{
			Headless:       browserDefaults.Headless,
			ViewportWidth:  browserDefaults.Viewport.Width,
			ViewportHeight: browserDefaults.Viewport.Height,
			Timeout:        browserDefaults.Timeout,
			Args:           browserDefaults.Args,
			Install:        true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.conductor/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(homeDir, ".conductor", "config.yaml"), nil
}

// Load reads the config file at path, applies environment overrides and
// validates the result. An empty path means DefaultPath, which may be absent;
// an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	store := NewFileStore(path)
	cfg, err := store.Load()
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			cfg = Default()
		} else {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables looked up with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvAPIKey); v != "" {
		c.LLM.APIKey = v
	}
	if v := getenv(EnvBaseURL); v != "" {
		c.LLM.BaseURL = v
	}
	if v := getenv(EnvModel); v != "" {
		c.LLM.Model = v
	}
	if v := getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(getenv(EnvMaxIterations)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "%s must be an integer", EnvMaxIterations)
		}
		c.Agent.MaxIterations = n
	}
	if v := strings.TrimSpace(getenv(EnvHeadless)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "%s must be a boolean", EnvHeadless)
		}
		c.Browser.Headless = b
	}
	return nil
}

// Validate reports the first invalid setting. An out of range
// agent.max_iterations is clamped into [agent.MinIterations, agent.MaxIterations]
// with a warning instead of being rejected.
func (c *Config) Validate() error {
	if clamped := agent.ClampIterations(c.Agent.MaxIterations); clamped != c.Agent.MaxIterations {
		configLog.Warnf("agent.max_iterations %d is outside [%d, %d], using %d",
			c.Agent.MaxIterations, agent.MinIterations, agent.MaxIterations, clamped)
		c.Agent.MaxIterations = clamped
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr cannot be empty")
	}
	if c.Server.HistoryLimit < 0 {
		return errors.Newf("server.history_limit cannot be negative, got %d", c.Server.HistoryLimit)
	}
	if c.Browser.ViewportWidth <= 0 || c.Browser.ViewportHeight <= 0 {
		return errors.Newf("browser viewport must be positive, got %dx%d",
			c.Browser.ViewportWidth, c.Browser.ViewportHeight)
	}
	if c.Browser.Timeout < 0 {
		return errors.New("browser.timeout_ms cannot be negative")
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrapf(err, "invalid logging.level %q", c.Logging.Level)
	}
	for _, p := range c.Tools.Disabled {
		if _, err := glob.Compile(p); err != nil {
			return errors.Wrapf(err, "invalid tools.disabled pattern %q", p)
		}
	}
	return nil
}

// BrowserOptions converts the browser section into session launch options.
func (c *Config) BrowserOptions() browser.Options {
	opts := browser.DefaultOptions()
	opts.Headless = c.Browser.Headless
	opts.Viewport = browser.Viewport{Width: c.Browser.ViewportWidth, Height: c.Browser.ViewportHeight}
	opts.Timeout = c.Browser.Timeout
	if len(c.Browser.Args) > 0 {
		opts.Args = append([]string(nil), c.Browser.Args...)
	}
	return opts
}

// BrowserToolsEnabled reports whether any playwright_* tool survives the disabled patterns.
func (c *Config) BrowserToolsEnabled() bool {
	for _, p := range c.Tools.Disabled {
		g, err := glob.Compile(p)
		if err != nil {
			continue
		}
		if g.Match("playwright_init") {
			return false
		}
	}
	return true
}
