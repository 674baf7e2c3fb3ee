package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"companion-llm/internal/domain"
	"companion-llm/internal/llm"
)

var ErrGameServiceNotConfigured = errors.New("game service not configured")

// GameContentCache guarda contenido de juegos generado por el modelo.
type GameContentCache interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// GameService genera el contenido de los cuatro juegos con defaults fijos ante fallas.
type GameService struct {
	logger    *zap.Logger
	llmClient llm.LLMClient
	cache     GameContentCache
}

func NewGameService(logger *zap.Logger, llmClient llm.LLMClient, cache GameContentCache) *GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameService{logger: logger, llmClient: llmClient, cache: cache}
}

// cachedGenerate consulta la cache y solo guarda resultados del modelo.
func cachedGenerate[T any](ctx context.Context, s *GameService, key string, gen func() domain.Generated[T]) domain.Generated[T] {
	if s.cache != nil {
		var cached T
		ok, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("game cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			s.logger.Debug("game cache hit", zap.String("key", key))
			return domain.FromModel(cached)
		}
	}

	res := gen()
	if s.cache != nil && !res.IsFallback() {
		if err := s.cache.Set(ctx, key, res.Value); err != nil {
			s.logger.Warn("game cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return res
}

func normalizeParam(v, def string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return def
	}
	return v
}

func cacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// capitalize replica str.capitalize: primera letra en mayuscula, resto en minuscula.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
