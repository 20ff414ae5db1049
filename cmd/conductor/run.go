package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/entrhq/conductor/pkg/agent"
	"github.com/entrhq/conductor/pkg/agent/tools"
	"github.com/entrhq/conductor/pkg/config"
	"github.com/entrhq/conductor/pkg/llm"
	"github.com/entrhq/conductor/pkg/llm/tokenizer"
	"github.com/entrhq/conductor/pkg/logging"
	"github.com/entrhq/conductor/pkg/server"
	"github.com/entrhq/conductor/pkg/tools/basic"
	"github.com/entrhq/conductor/pkg/tools/browser"
	"github.com/entrhq/conductor/pkg/types"
)

// run wires configuration, provider and tools, then serves or runs one message.
func run(ctx context.Context, cli *CLIConfig) error {
	cfg, err := config.Load(cli.ConfigFile)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	applyFlags(cfg, cli)
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	if cli.WriteConfig != "" {
		if err := config.NewFileStore(cli.WriteConfig).Save(cfg); err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", cli.WriteConfig)
		return nil
	}

	if err := logging.SetLevel(cfg.Logging.Level); err != nil {
		return err
	}
	logger, err := logging.NewLogger("conductor")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logger.Close()

	provider, err := cfg.BuildProvider(cli.Model, cli.BaseURL, cli.APIKey)
	if err != nil {
		return err
	}
	logger.Infof("Using model %s at %s", provider.GetModel(), provider.GetBaseURL())

	var tok *tokenizer.Tokenizer
	if cfg.Agent.EstimateTokens {
		tok, err = tokenizer.New(tokenizer.DefaultEncoding)
		if err != nil {
			logger.Warnf("Token estimation disabled: %v", err)
			tok = nil
		}
	}

	driver := browser.NewPlaywrightDriver(browser.WithInstall(cfg.Browser.Install))
	defer func() {
		if err := driver.Stop(); err != nil {
			logger.Warnf("Stopping Playwright: %v", err)
		}
	}()

	deps := &factoryDeps{
		cfg:       cfg,
		provider:  provider,
		driver:    driver,
		tokenizer: tok,
		logger:    logger,
	}

	if cli.Message != "" {
		return runOnce(ctx, deps, cli.Message, cli.Verbose)
	}

	srv, err := server.New(deps.newAgent,
		server.WithHistoryLimit(cfg.Server.HistoryLimit),
		server.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	fmt.Printf("conductor listening on %s (model %s)\n", cfg.Server.Addr, provider.GetModel())
	return srv.Run(ctx, cfg.Server.Addr)
}

// factoryDeps holds what every orchestrator shares: configuration, the model
// provider and the Playwright driver. Each orchestrator gets its own registry
// and browser session.
type factoryDeps struct {
	cfg       *config.Config
	provider  llm.Provider
	driver    browser.Driver
	tokenizer *tokenizer.Tokenizer
	logger    *logging.Logger
	events    types.EventHandler
}

func (d *factoryDeps) newAgent() (agent.Agent, error) {
	registry, err := tools.NewRegistry(tools.WithDisabledPatterns(d.cfg.Tools.Disabled...))
	if err != nil {
		return nil, err
	}
	if err := registry.RegisterAll(basic.Tools(time.Now)...); err != nil {
		return nil, err
	}

	opts := []agent.AgentOption{
		agent.WithMaxIterations(d.cfg.Agent.MaxIterations),
		agent.WithCustomInstructions(d.cfg.Agent.CustomInstructions),
	}

	if d.cfg.BrowserToolsEnabled() {
		session := browser.NewSession(d.driver, browser.WithOptions(d.cfg.BrowserOptions()))
		if err := registry.RegisterAll(browser.NewToolRegistry(session).RegisterTools()...); err != nil {
			return nil, err
		}
		opts = append(opts, agent.WithBrowserSession(session))
	}
	if d.tokenizer != nil {
		opts = append(opts, agent.WithTokenizer(d.tokenizer))
	}
	if d.events != nil {
		opts = append(opts, agent.WithEventHandler(d.events))
	}
	if d.logger != nil {
		opts = append(opts, agent.WithLogger(d.logger))
	}

	return agent.NewDefaultAgent(d.provider, registry, opts...)
}

// runOnce sends a single message and prints the answer.
func runOnce(ctx context.Context, deps *factoryDeps, message string, verbose bool) error {
	if verbose {
		deps.events = printEvent
	}

	ag, err := deps.newAgent()
	if err != nil {
		return err
	}
	defer ag.Teardown()

	answer, err := ag.SendMessage(ctx, message)
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}

func printEvent(ev *types.AgentEvent) {
	switch ev.Type {
	case types.EventTypeToolCall:
		fmt.Fprintf(os.Stderr, "[%d] -> %s %s\n", ev.Iteration+1, ev.ToolName, ev.Content)
	case types.EventTypeToolResult:
		fmt.Fprintf(os.Stderr, "[%d] <- %s ok\n", ev.Iteration+1, ev.ToolName)
	case types.EventTypeToolResultError:
		fmt.Fprintf(os.Stderr, "[%d] <- %s failed: %v\n", ev.Iteration+1, ev.ToolName, ev.Error)
	case types.EventTypeTokenUsage:
		fmt.Fprintf(os.Stderr, "[%d] prompt ~%d tokens\n", ev.Iteration+1, ev.PromptTokens)
	case types.EventTypeError:
		fmt.Fprintf(os.Stderr, "[%d] error: %v\n", ev.Iteration+1, ev.Error)
	}
}
