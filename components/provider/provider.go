// Package provider builds the LLMClient selected by the inference configuration
package provider

import (
	"errors"
	"fmt"

	"github.com/bububa/heroku-a2a/components"
	"github.com/bububa/heroku-a2a/components/provider/anthropic"
	"github.com/bububa/heroku-a2a/components/provider/echo"
	"github.com/bububa/heroku-a2a/components/provider/openai"
	"github.com/bububa/heroku-a2a/config"
)

// ErrMissingCredential is returned when the provider needs an API key and none is configured
var ErrMissingCredential = errors.New("INFERENCE_API_KEY must be provided")

// New returns the client for cfg.Provider
func New(cfg config.Inference) (components.LLMClient, error) {
	if cfg.RequiresKey() && cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return openai.New(cfg.APIKey, cfg.URL), nil
	case config.ProviderAnthropic:
		return anthropic.New(cfg.APIKey, cfg.URL), nil
	case config.ProviderEcho:
		return echo.New(), nil
	}
	return nil, fmt.Errorf("unknown inference provider %q", cfg.Provider)
}
