package service

import (
	"context"
	"fmt"
	"strings"

	"companion-llm/internal/domain"
)

const defaultWordDropParagraph = "Taking care of your mental health is just as important as physical health. Remember to be kind to yourself and practice self-compassion daily. Small steps toward wellness can lead to significant positive changes in your life."

// WordDrop genera el parrafo del juego de palabras.
func (s *GameService) WordDrop(ctx context.Context, difficulty, theme string) (domain.Generated[domain.WordDropContent], error) {
	if s == nil || s.llmClient == nil {
		return domain.Generated[domain.WordDropContent]{}, ErrGameServiceNotConfigured
	}
	difficulty = normalizeParam(difficulty, "medium")
	theme = normalizeParam(theme, "general")
	def := DefaultWordDrop(difficulty, theme)

	return cachedGenerate(ctx, s, cacheKey("word-drop", difficulty, theme), func() domain.Generated[domain.WordDropContent] {
		res := generateStructured(ctx, s.llmClient, s.logger, "word_drop", wordDropPrompt(difficulty, theme), def, "paragraph")
		if res.IsFallback() {
			return res
		}
		if strings.TrimSpace(res.Value.Paragraph) == "" {
			return domain.FromFallback(def, ReasonMissingKeys)
		}
		if res.Value.Difficulty == "" {
			res.Value.Difficulty = difficulty
		}
		if res.Value.Theme == "" {
			res.Value.Theme = theme
		}
		return res
	}), nil
}

func wordDropPrompt(difficulty, theme string) string {
	return fmt.Sprintf(`
Generate an inspiring, uplifting paragraph about mental health and wellbeing.
The paragraph should be positive, encouraging, and focus on resilience, growth, self-care, or mindfulness.
It should be approximately 3-4 sentences long and use accessible language.

The theme is: %[2]s
Difficulty level: %[1]s

Respond ONLY with JSON in this format:
{
  "paragraph": "The inspiring paragraph text goes here...",
  "difficulty": "%[1]s",
  "theme": "%[2]s"
}
`, difficulty, theme)
}

func DefaultWordDrop(difficulty, theme string) domain.WordDropContent {
	return domain.WordDropContent{
		Paragraph:  defaultWordDropParagraph,
		Difficulty: difficulty,
		Theme:      theme,
	}
}
