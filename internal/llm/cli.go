package llm

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

const listTimeout = 10 * time.Second

// commandRunner ejecuta un binario con stdin y devuelve stdout/stderr.
type commandRunner func(ctx context.Context, stdin string, name string, args ...string) ([]byte, []byte, error)

func execRunner(ctx context.Context, stdin string, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// CLIClient invoca el modelo local como subproceso (`ollama run <model>`), con el prompt por stdin.
type CLIClient struct {
	binary  string
	model   string
	timeout time.Duration
	run     commandRunner
	logger  *zap.Logger
}

func NewCLIClient(binary, model string, timeout time.Duration, logger *zap.Logger) *CLIClient {
	if strings.TrimSpace(binary) == "" {
		binary = "ollama"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CLIClient{
		binary:  binary,
		model:   model,
		timeout: timeout,
		run:     execRunner,
		logger:  logger,
	}
}

func (c *CLIClient) Model() string { return c.model }

func (c *CLIClient) Endpoint() string { return "cli://" + c.binary }

func (c *CLIClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	stdout, stderr, err := c.run(ctx, prompt, c.binary, "run", c.model)
	if err != nil {
		if ctx.Err() != nil {
			c.logger.Warn("model call aborted", zap.String("model", c.model), zap.Duration("elapsed", time.Since(start)), zap.Error(ctx.Err()))
			return "", classifyCtxErr(ctx, c.timeout, err)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail := strings.TrimSpace(string(stderr))
			c.logger.Error("model process exited with error", zap.String("model", c.model), zap.String("stderr", detail))
			return "", fmt.Errorf("%w: %s", ErrModelFailed, detail)
		}
		c.logger.Error("model process could not start", zap.String("binary", c.binary), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	out := strings.TrimSpace(string(stdout))
	c.logger.Debug("model response", zap.String("model", c.model), zap.Int("chars", len(out)), zap.Duration("elapsed", time.Since(start)))
	return out, nil
}

// ListModels parsea la salida tabular de `ollama list`.
func (c *CLIClient) ListModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	stdout, stderr, err := c.run(ctx, "", c.binary, "list")
	if err != nil {
		if ctx.Err() != nil {
			return nil, classifyCtxErr(ctx, listTimeout, err)
		}
		detail := strings.TrimSpace(string(stderr))
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("%w: %s", ErrModelUnavailable, detail)
	}
	return parseModelList(string(stdout)), nil
}

func parseModelList(out string) []string {
	models := []string{}
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.EqualFold(fields[0], "NAME") {
			continue
		}
		models = append(models, fields[0])
	}
	return models
}
