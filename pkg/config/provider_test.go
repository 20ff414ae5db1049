package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProvider(t *testing.T) {
	tests := []struct {
		name          string
		cfgModel      string
		cfgBaseURL    string
		cfgAPIKey     string
		cliModel      string
		cliBaseURL    string
		cliAPIKey     string
		expectError   bool
		expectedModel string
		expectedURL   string
	}{
		{
			name:          "CLI flags take precedence over config",
			cfgModel:      "gpt-4o",
			cfgBaseURL:    "https://cfg.example.com/v1",
			cfgAPIKey:     "cfg-key",
			cliModel:      "gpt-4.1",
			cliBaseURL:    "https://cli.example.com/v1",
			cliAPIKey:     "cli-key",
			expectedModel: "gpt-4.1",
			expectedURL:   "https://cli.example.com/v1",
		},
		{
			name:          "config used when CLI empty",
			cfgModel:      "gpt-4o",
			cfgBaseURL:    "https://cfg.example.com/v1",
			cfgAPIKey:     "cfg-key",
			expectedModel: "gpt-4o",
			expectedURL:   "https://cfg.example.com/v1",
		},
		{
			name:          "default model when nothing set",
			cfgAPIKey:     "cfg-key",
			expectedModel: "gpt-4o-mini",
			expectedURL:   "https://api.openai.com/v1",
		},
		{
			name:        "error when no API key",
			cfgModel:    "gpt-4o",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "")
			t.Setenv("OPENAI_BASE_URL", "")

			cfg := Default()
			cfg.LLM = LLMConfig{Model: tt.cfgModel, BaseURL: tt.cfgBaseURL, APIKey: tt.cfgAPIKey}

			provider, err := cfg.BuildProvider(tt.cliModel, tt.cliBaseURL, tt.cliAPIKey)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "API key is required")
				return
			}

			require.NoError(t, err)
			require.NotNil(t, provider)
			assert.Equal(t, tt.expectedModel, provider.GetModel())
			assert.Equal(t, tt.expectedURL, provider.GetBaseURL())
		})
	}
}
