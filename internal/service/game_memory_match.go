package service

import (
	"context"
	"fmt"

	"companion-llm/internal/domain"
)

var defaultMemoryPairs = []domain.MemoryPair{
	{ID: "pair1", Concept: "Mindfulness", Match: "Present moment awareness", Category: "Meditation"},
	{ID: "pair2", Concept: "Self-compassion", Match: "Being kind to yourself", Category: "Self-care"},
	{ID: "pair3", Concept: "Gratitude", Match: "Appreciating what you have", Category: "Positive psychology"},
	{ID: "pair4", Concept: "Resilience", Match: "Bouncing back from challenges", Category: "Coping skills"},
	{ID: "pair5", Concept: "Deep breathing", Match: "Calming the nervous system", Category: "Stress reduction"},
	{ID: "pair6", Concept: "Growth mindset", Match: "Believing abilities can be developed", Category: "Personal development"},
	{ID: "pair7", Concept: "Emotional intelligence", Match: "Understanding and managing feelings", Category: "Emotional wellness"},
	{ID: "pair8", Concept: "Social connection", Match: "Building meaningful relationships", Category: "Social wellness"},
	{ID: "pair9", Concept: "Cognitive reframing", Match: "Changing negative thought patterns", Category: "Cognitive techniques"},
	{ID: "pair10", Concept: "Boundaries", Match: "Healthy limits in relationships", Category: "Interpersonal skills"},
	{ID: "pair11", Concept: "Flow state", Match: "Complete absorption in an activity", Category: "Optimal experience"},
	{ID: "pair12", Concept: "Self-reflection", Match: "Examining your thoughts and actions", Category: "Self-awareness"},
}

// PairsForDifficulty es la cantidad de pares por nivel: easy 6, medium 8, hard 12.
// Niveles desconocidos usan 6.
func PairsForDifficulty(difficulty string) int {
	switch difficulty {
	case "medium":
		return 8
	case "hard":
		return 12
	default:
		return 6
	}
}

// MemoryMatch genera los pares del juego de memoria con la cantidad del nivel pedido.
func (s *GameService) MemoryMatch(ctx context.Context, difficulty, theme string) (domain.Generated[domain.MemoryMatchSet], error) {
	if s == nil || s.llmClient == nil {
		return domain.Generated[domain.MemoryMatchSet]{}, ErrGameServiceNotConfigured
	}
	difficulty = normalizeParam(difficulty, "medium")
	theme = normalizeParam(theme, "mindfulness")
	def := DefaultMemoryMatch(difficulty, theme)
	want := PairsForDifficulty(difficulty)

	return cachedGenerate(ctx, s, cacheKey("memory-match", difficulty, theme), func() domain.Generated[domain.MemoryMatchSet] {
		res := generateStructured(ctx, s.llmClient, s.logger, "memory_match", memoryMatchPrompt(difficulty, theme), def,
			"pairs", "difficulty", "theme", "title", "description")
		if res.IsFallback() {
			return res
		}
		res.Value.Pairs = fitPairs(res.Value.Pairs, want)
		return res
	}), nil
}

func fitPairs(pairs []domain.MemoryPair, want int) []domain.MemoryPair {
	out := make([]domain.MemoryPair, 0, want)
	for _, p := range pairs {
		if p.Concept == "" || p.Match == "" {
			continue
		}
		if len(out) == want {
			break
		}
		if p.ID == "" {
			p.ID = fmt.Sprintf("pair%d", len(out)+1)
		}
		out = append(out, p)
	}
	for i := len(out); i < want && i < len(defaultMemoryPairs); i++ {
		out = append(out, defaultMemoryPairs[i])
	}
	return out
}

func memoryMatchPrompt(difficulty, theme string) string {
	return fmt.Sprintf(`
Generate pairs of matching concepts related to mental health and wellbeing for a memory matching game.
Each pair should consist of a concept and a brief description or related term.

Theme: %[2]s
Difficulty level: %[1]s

Respond ONLY with JSON in this format:
{
  "pairs": [
    {
      "id": "pair1",
      "concept": "Concept name",
      "match": "Matching description or related term",
      "category": "Category of the concept"
    }
  ],
  "difficulty": "%[1]s",
  "theme": "%[2]s",
  "title": "A title for this set of cards",
  "description": "A brief description of the concepts covered"
}

Generate exactly %[3]d pairs (%[4]d cards total).
`, difficulty, theme, PairsForDifficulty(difficulty), PairsForDifficulty(difficulty)*2)
}

func DefaultMemoryMatch(difficulty, theme string) domain.MemoryMatchSet {
	n := PairsForDifficulty(difficulty)
	pairs := make([]domain.MemoryPair, n)
	copy(pairs, defaultMemoryPairs[:n])
	return domain.MemoryMatchSet{
		Pairs:       pairs,
		Difficulty:  difficulty,
		Theme:       theme,
		Title:       capitalize(theme) + " Concepts",
		Description: fmt.Sprintf("Match these %s concepts with their descriptions to improve your understanding of mental wellness.", theme),
	}
}
