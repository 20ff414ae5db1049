package config

import (
	"github.com/cockroachdb/errors"

	"github.com/entrhq/conductor/pkg/llm/openai"
)

// BuildProvider creates the OpenAI provider. Non-empty CLI values win over
// the configuration, which already carries environment overrides.
func (c *Config) BuildProvider(cliModel, cliBaseURL, cliAPIKey string) (*openai.Provider, error) {
	model := firstNonEmpty(cliModel, c.LLM.Model, openai.DefaultModel)
	baseURL := firstNonEmpty(cliBaseURL, c.LLM.BaseURL)
	apiKey := firstNonEmpty(cliAPIKey, c.LLM.APIKey)

	if apiKey == "" {
		return nil, errors.New("API key is required. Set OPENAI_API_KEY, use -api-key flag, or configure llm.api_key in ~/.conductor/config.yaml")
	}

	opts := []openai.ProviderOption{openai.WithModel(model)}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	provider, err := openai.NewProvider(apiKey, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create LLM provider")
	}
	return provider, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
