package llm

import (
	"context"
	"errors"
	"time"
)

// LLMClient define la interfaz para generar respuestas con un LLM.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModelLister expone los modelos disponibles en el backend configurado.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// Backend es lo que necesitan los servicios y el endpoint de estado.
type Backend interface {
	LLMClient
	ModelLister
	Model() string
	Endpoint() string
}

var (
	ErrModelTimeout     = errors.New("model call timed out")
	ErrModelFailed      = errors.New("model process failed")
	ErrModelUnavailable = errors.New("model unavailable")
)

// DefaultTimeout es el techo por llamada cuando no se configura otro.
const DefaultTimeout = 120 * time.Second

const (
	timeoutApology    = "I'm sorry, it's taking me longer than expected to respond. Could you try again with a simpler question?"
	failureApology    = "I'm sorry, I encountered an issue while processing your request. Error: "
	connectionApology = "I'm sorry, I'm having trouble connecting to the language model. Error: "
)

// FallbackText traduce un error del modelo al texto de disculpa que ve el usuario en el chat.
func FallbackText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrModelTimeout):
		return timeoutApology
	case errors.Is(err, ErrModelFailed):
		return failureApology + err.Error()
	default:
		return connectionApology + err.Error()
	}
}

// classifyCtxErr convierte errores de contexto en errores tipados del paquete.
func classifyCtxErr(ctx context.Context, timeout time.Duration, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return timeoutError(timeout)
	}
	return errors.Join(ErrModelUnavailable, err)
}

func timeoutError(timeout time.Duration) error {
	return &timeoutErr{after: timeout}
}

type timeoutErr struct {
	after time.Duration
}

func (e *timeoutErr) Error() string {
	return ErrModelTimeout.Error() + " after " + e.after.String()
}

func (e *timeoutErr) Unwrap() error {
	return ErrModelTimeout
}
