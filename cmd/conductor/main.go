// Package main provides the conductor binary: an HTTP server that hosts one
// tool-calling orchestrator per conversation, or a one-shot runner for a
// single message.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"

	"github.com/entrhq/conductor/pkg/config"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigFile    string
	EnvFile       string
	APIKey        string
	BaseURL       string
	Model         string
	Addr          string
	Message       string
	MaxIterations int
	WriteConfig   string
	Verbose       bool
	ShowVersion   bool
}

func main() {
	cli := parseFlags()

	if cli.ShowVersion {
		fmt.Printf("conductor v%s\n", version)
		return
	}

	if err := loadEnvFile(cli.EnvFile); err != nil {
		log.Printf("Warning: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cli)
	stop()
	if err != nil {
		log.Printf("conductor: %v", err)
		os.Exit(1)
	}
}

// parseFlags parses command line flags
func parseFlags() *CLIConfig {
	cli := &CLIConfig{}

	flag.StringVar(&cli.ConfigFile, "config", "", "Path to configuration file (default ~/.conductor/config.yaml)")
	flag.StringVar(&cli.EnvFile, "env-file", ".env", "Dotenv file loaded before reading the environment")
	flag.StringVar(&cli.APIKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY)")
	flag.StringVar(&cli.BaseURL, "base-url", "", "OpenAI API base URL (overrides OPENAI_BASE_URL)")
	flag.StringVar(&cli.Model, "model", "", "LLM model to use")
	flag.StringVar(&cli.Addr, "addr", "", "HTTP listen address")
	flag.StringVar(&cli.Message, "message", "", "Run a single message and print the answer instead of serving HTTP")
	flag.IntVar(&cli.MaxIterations, "max-iterations", 0, "Iteration budget per message (1-10)")
	flag.StringVar(&cli.WriteConfig, "write-config", "", "Write the effective configuration to this path and exit")
	flag.BoolVar(&cli.Verbose, "verbose", false, "Print loop events to stderr in one-shot mode")
	flag.BoolVar(&cli.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "conductor - tool-calling LLM orchestrator\n\n")
		fmt.Fprintf(os.Stderr, "Usage: conductor [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Serve the chat API on :8080\n")
		fmt.Fprintf(os.Stderr, "  conductor\n\n")
		fmt.Fprintf(os.Stderr, "  # Ask one question\n")
		fmt.Fprintf(os.Stderr, "  conductor -message \"What is 2+2?\"\n\n")
		fmt.Fprintf(os.Stderr, "  # Without browser tools\n")
		fmt.Fprintf(os.Stderr, "  CONDUCTOR_MODEL=gpt-4o conductor -config conductor.yaml\n\n")
	}

	flag.Parse()
	return cli
}

// loadEnvFile loads path into the environment. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "failed to load %s", path)
	}
	return nil
}

// applyFlags overrides configuration values with non-zero flags.
func applyFlags(cfg *config.Config, cli *CLIConfig) {
	if cli.Addr != "" {
		cfg.Server.Addr = cli.Addr
	}
	if cli.MaxIterations != 0 {
		cfg.Agent.MaxIterations = cli.MaxIterations
	}
}
