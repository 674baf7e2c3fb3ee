package llm

import (
	"context"
	"sync"
)

// MockClient permite tests sin llamar a un LLM real.
// Si GenerateFunc esta definido tiene prioridad sobre Response/Err.
type MockClient struct {
	Response     string
	Err          error
	GenerateFunc func(prompt string) (string, error)
	Models       []string
	ListErr      error

	mu      sync.Mutex
	prompts []string
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(prompt)
	}
	return m.Response, m.Err
}

func (m *MockClient) ListModels(ctx context.Context) ([]string, error) {
	return m.Models, m.ListErr
}

func (m *MockClient) Model() string { return "mock" }

func (m *MockClient) Endpoint() string { return "mock://llm" }

// Calls devuelve cuantas veces se invoco Generate.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompts devuelve una copia de los prompts recibidos.
func (m *MockClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}
