package llm

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	ProviderCLI    = "cli"
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Options reune lo necesario para construir cualquier backend.
type Options struct {
	Provider  string
	Model     string
	Binary    string
	OllamaURL string
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
}

// New construye el backend indicado por Options.Provider.
func New(opts Options, logger *zap.Logger) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderCLI:
		return NewCLIClient(opts.Binary, opts.Model, opts.Timeout, logger), nil
	case ProviderOllama:
		return NewOllamaClient(opts.OllamaURL, opts.Model, opts.Timeout)
	case ProviderOpenAI:
		return NewOpenAIClient(opts.BaseURL, opts.APIKey, opts.Model, opts.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", opts.Provider)
	}
}
