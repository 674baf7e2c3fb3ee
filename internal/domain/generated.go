package domain

// Source indica el origen de un contenido devuelto al cliente.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Generated envuelve un resultado de agente y marca si proviene del modelo o de un default.
type Generated[T any] struct {
	Value  T
	Source Source
	Reason string
}

// FromModel construye un resultado genuino.
func FromModel[T any](v T) Generated[T] {
	return Generated[T]{Value: v, Source: SourceModel}
}

// FromFallback construye un resultado sustituido por un default con su motivo.
func FromFallback[T any](v T, reason string) Generated[T] {
	return Generated[T]{Value: v, Source: SourceFallback, Reason: reason}
}

// IsFallback reporta si el valor fue sustituido.
func (g Generated[T]) IsFallback() bool {
	return g.Source == SourceFallback
}
