package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaClient habla con el servidor HTTP de Ollama en lugar del CLI.
type OllamaClient struct {
	llm        llms.Model
	baseURL    string
	model      string
	timeout    time.Duration
	httpClient *http.Client
}

func NewOllamaClient(baseURL, model string, timeout time.Duration) (*OllamaClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	l, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("init ollama client: %w", err)
	}
	return &OllamaClient{
		llm:        l,
		baseURL:    baseURL,
		model:      model,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: listTimeout},
	}, nil
}

func (c *OllamaClient) Model() string { return c.model }

func (c *OllamaClient) Endpoint() string { return c.baseURL + "/api/generate" }

func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithTemperature(0.7),
		llms.WithTopP(0.9),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", classifyCtxErr(ctx, c.timeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	return strings.TrimSpace(out), nil
}

type ollamaTags struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// ListModels consulta /api/tags.
func (c *OllamaClient) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status=%d", ErrModelUnavailable, resp.StatusCode)
	}

	var tags ollamaTags
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	models := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		models = append(models, m.Name)
	}
	return models, nil
}
