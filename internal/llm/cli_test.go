package llm

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestCLI(run commandRunner, timeout time.Duration) *CLIClient {
	c := NewCLIClient("ollama", "mistral:latest", timeout, zap.NewNop())
	c.run = run
	return c
}

func TestCLIClientGenerate_PassesPromptOnStdin(t *testing.T) {
	var gotStdin, gotName string
	var gotArgs []string
	c := newTestCLI(func(ctx context.Context, stdin, name string, args ...string) ([]byte, []byte, error) {
		gotStdin, gotName, gotArgs = stdin, name, args
		return []byte("  hola  \n"), nil, nil
	}, time.Second)

	out, err := c.Generate(context.Background(), "prompt de prueba")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != "hola" {
		t.Fatalf("expected trimmed output, got %q", out)
	}
	if gotStdin != "prompt de prueba" || gotName != "ollama" {
		t.Fatalf("unexpected invocation: name=%s stdin=%q", gotName, gotStdin)
	}
	if strings.Join(gotArgs, " ") != "run mistral:latest" {
		t.Fatalf("unexpected args %v", gotArgs)
	}
}

func TestCLIClientGenerate_Timeout(t *testing.T) {
	c := newTestCLI(func(ctx context.Context, stdin, name string, args ...string) ([]byte, []byte, error) {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}, 10*time.Millisecond)

	_, err := c.Generate(context.Background(), "p")
	if !errors.Is(err, ErrModelTimeout) {
		t.Fatalf("expected ErrModelTimeout, got %v", err)
	}
	if FallbackText(err) != timeoutApology {
		t.Fatalf("unexpected fallback text %q", FallbackText(err))
	}
}

func TestCLIClientGenerate_NonZeroExit(t *testing.T) {
	c := newTestCLI(func(ctx context.Context, stdin, name string, args ...string) ([]byte, []byte, error) {
		return nil, []byte("model not found\n"), &exec.ExitError{}
	}, time.Second)

	_, err := c.Generate(context.Background(), "p")
	if !errors.Is(err, ErrModelFailed) {
		t.Fatalf("expected ErrModelFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Fatalf("expected stderr embedded, got %v", err)
	}
	text := FallbackText(err)
	if !strings.HasPrefix(text, failureApology) || !strings.Contains(text, "model not found") {
		t.Fatalf("unexpected fallback text %q", text)
	}
}

func TestCLIClientGenerate_BinaryMissing(t *testing.T) {
	c := newTestCLI(func(ctx context.Context, stdin, name string, args ...string) ([]byte, []byte, error) {
		return nil, nil, exec.ErrNotFound
	}, time.Second)

	_, err := c.Generate(context.Background(), "p")
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
	if !strings.HasPrefix(FallbackText(err), connectionApology) {
		t.Fatalf("unexpected fallback text %q", FallbackText(err))
	}
}

func TestCLIClientListModels(t *testing.T) {
	listing := "NAME              ID              SIZE      MODIFIED\n" +
		"mistral:latest    2ae6f6dd7a3d    4.1 GB    2 weeks ago\n" +
		"llama3:8b         365c0bd3c000    4.7 GB    3 days ago\n"
	c := newTestCLI(func(ctx context.Context, stdin, name string, args ...string) ([]byte, []byte, error) {
		if len(args) != 1 || args[0] != "list" {
			t.Fatalf("unexpected args %v", args)
		}
		return []byte(listing), nil, nil
	}, time.Second)

	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(models) != 2 || models[0] != "mistral:latest" || models[1] != "llama3:8b" {
		t.Fatalf("unexpected models %v", models)
	}
}

func TestCLIClientListModels_Error(t *testing.T) {
	c := newTestCLI(func(ctx context.Context, stdin, name string, args ...string) ([]byte, []byte, error) {
		return nil, []byte("could not connect to ollama app"), errors.New("exit status 1")
	}, time.Second)

	_, err := c.ListModels(context.Background())
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}
