package llm

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestFallbackText(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		prefix string
	}{
		{"nil", nil, ""},
		{"timeout", timeoutError(2 * time.Second), timeoutApology},
		{"failed", fmt.Errorf("%w: boom", ErrModelFailed), failureApology},
		{"unavailable", fmt.Errorf("%w: dial tcp", ErrModelUnavailable), connectionApology},
		{"other", errors.New("unexpected"), connectionApology},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackText(tt.err)
			if tt.prefix == "" {
				if got != "" {
					t.Fatalf("expected empty text, got %q", got)
				}
				return
			}
			if !strings.HasPrefix(got, tt.prefix) {
				t.Fatalf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestTimeoutErrorWrapsSentinel(t *testing.T) {
	err := timeoutError(120 * time.Second)
	if !errors.Is(err, ErrModelTimeout) {
		t.Fatalf("expected ErrModelTimeout")
	}
	if !strings.Contains(err.Error(), "2m0s") {
		t.Fatalf("expected duration in message, got %q", err.Error())
	}
}

func TestNewBackendByProvider(t *testing.T) {
	logger := zap.NewNop()

	b, err := New(Options{Provider: "", Model: "mistral:latest"}, logger)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := b.(*CLIClient); !ok {
		t.Fatalf("expected CLI client by default, got %T", b)
	}

	b, err = New(Options{Provider: "openai", Model: "gpt-4o-mini", BaseURL: "http://localhost:9999/v1"}, logger)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if b.Endpoint() != "http://localhost:9999/v1/chat/completions" {
		t.Fatalf("unexpected endpoint %s", b.Endpoint())
	}

	if _, err := New(Options{Provider: "bard"}, logger); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
