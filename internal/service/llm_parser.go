package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"companion-llm/internal/domain"
	"companion-llm/internal/llm"
)

// Motivos de fallback expuestos en X-Fallback-Reason.
const (
	ReasonModelError  = "model_error"
	ReasonNoJSON      = "no_json_object"
	ReasonInvalidJSON = "invalid_json"
	ReasonMissingKeys = "missing_keys"
	ReasonEmptyOutput = "empty_output"
	ReasonEmptyInput  = "empty_input"
)

var (
	ErrInvalidJSON = errors.New("invalid json in model output")
	ErrMissingKeys = errors.New("missing required keys")
)

// DecodeModelJSON extrae el objeto JSON de la salida del modelo, verifica que
// esten las claves requeridas y lo decodifica en T.
func DecodeModelJSON[T any](raw string, required ...string) (T, error) {
	var zero T
	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return zero, err
	}

	if len(required) > 0 {
		var keys map[string]json.RawMessage
		if err := json.Unmarshal([]byte(obj), &keys); err != nil {
			return zero, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		if missing := missingKeys(keys, required); len(missing) > 0 {
			return zero, fmt.Errorf("%w: %s", ErrMissingKeys, strings.Join(missing, ", "))
		}
	}

	var out T
	if err := json.Unmarshal([]byte(obj), &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return out, nil
}

// ParseOrDefault nunca falla: devuelve el valor parseado o el default con su motivo.
func ParseOrDefault[T any](raw string, def T, required ...string) domain.Generated[T] {
	v, err := DecodeModelJSON[T](raw, required...)
	if err != nil {
		return domain.FromFallback(def, parseFailureReason(err))
	}
	return domain.FromModel(v)
}

func missingKeys(keys map[string]json.RawMessage, required []string) []string {
	var missing []string
	for _, k := range required {
		v, ok := keys[k]
		if !ok || strings.TrimSpace(string(v)) == "null" {
			missing = append(missing, k)
		}
	}
	return missing
}

func parseFailureReason(err error) string {
	switch {
	case errors.Is(err, ErrNoJSONObject):
		return ReasonNoJSON
	case errors.Is(err, ErrMissingKeys):
		return ReasonMissingKeys
	default:
		return ReasonInvalidJSON
	}
}

// generateStructured ejecuta prompt -> modelo -> parseo, usando def ante cualquier falla.
func generateStructured[T any](ctx context.Context, client llm.LLMClient, logger *zap.Logger, op, prompt string, def T, required ...string) domain.Generated[T] {
	raw, err := client.Generate(ctx, prompt)
	if err != nil {
		logger.Warn("llm call failed, using fallback", zap.String("op", op), zap.Error(err))
		return domain.FromFallback(def, ReasonModelError)
	}

	res := ParseOrDefault(raw, def, required...)
	if res.IsFallback() {
		logger.Warn("llm output unusable, using fallback",
			zap.String("op", op),
			zap.String("reason", res.Reason),
			zap.String("raw_preview", preview(raw, 200)),
		)
	}
	return res
}

func preview(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
