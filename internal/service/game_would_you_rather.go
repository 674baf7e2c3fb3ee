package service

import (
	"context"
	"fmt"
	"strconv"

	"companion-llm/internal/domain"
)

const (
	DefaultWouldYouRatherCount = 10
	maxWouldYouRatherCount     = 10
)

var defaultWouldYouRatherQuestions = []domain.WouldYouRatherQuestion{
	{ID: "q1", OptionA: "Practice meditation for 10 minutes daily", OptionB: "Take a 30-minute nature walk weekly",
		InsightA: "You value consistent, brief moments of mindfulness in your daily routine", InsightB: "You prefer deeper connection with nature even if less frequent"},
	{ID: "q2", OptionA: "Have a deep conversation with one close friend", OptionB: "Have light social interactions with many acquaintances",
		InsightA: "You value depth and intimacy in relationships", InsightB: "You enjoy variety and breadth in social connections"},
	{ID: "q3", OptionA: "Express your feelings through art or writing", OptionB: "Talk through your feelings with someone else",
		InsightA: "You process emotions internally through creative expression", InsightB: "You process emotions externally through verbal communication"},
	{ID: "q4", OptionA: "Have perfect work-life balance but average career success", OptionB: "Have outstanding career success but struggle with work-life balance",
		InsightA: "You prioritize overall life satisfaction and balance", InsightB: "You're willing to make sacrifices for professional achievement"},
	{ID: "q5", OptionA: "Be able to fully control your dreams", OptionB: "Need 2 hours less sleep without feeling tired",
		InsightA: "You value the quality and experience of rest", InsightB: "You value efficiency and having more waking hours"},
	{ID: "q6", OptionA: "Have the ability to instantly calm yourself in any situation", OptionB: "Have the ability to motivate yourself to do anything",
		InsightA: "You value emotional regulation and peace of mind", InsightB: "You value drive and accomplishment"},
	{ID: "q7", OptionA: "Live in a bustling city with many opportunities", OptionB: "Live in a peaceful rural area with fewer distractions",
		InsightA: "You thrive on stimulation and possibilities", InsightB: "You value tranquility and simplicity"},
	{ID: "q8", OptionA: "Have one lifelong best friend", OptionB: "Have many good friends throughout life",
		InsightA: "You value depth and consistency in friendship", InsightB: "You value variety and new perspectives in relationships"},
	{ID: "q9", OptionA: "Be able to read others' emotions perfectly", OptionB: "Be able to communicate your own emotions perfectly",
		InsightA: "You value understanding others and empathy", InsightB: "You value self-expression and being understood"},
	{ID: "q10", OptionA: "Have more time to pursue hobbies", OptionB: "Have more energy throughout the day",
		InsightA: "You value personal interests and self-development", InsightB: "You value vitality and consistent performance"},
}

// ClampQuestionCount limita la cantidad pedida a 1..10.
func ClampQuestionCount(count int) int {
	if count <= 0 {
		return DefaultWouldYouRatherCount
	}
	return min(count, maxWouldYouRatherCount)
}

// WouldYouRather genera count dilemas; la lista siempre tiene exactamente count elementos.
func (s *GameService) WouldYouRather(ctx context.Context, count int, category string) (domain.Generated[domain.WouldYouRatherSet], error) {
	if s == nil || s.llmClient == nil {
		return domain.Generated[domain.WouldYouRatherSet]{}, ErrGameServiceNotConfigured
	}
	count = ClampQuestionCount(count)
	category = normalizeParam(category, "general")
	def := DefaultWouldYouRather(count, category)

	key := cacheKey("would-you-rather", strconv.Itoa(count), category)
	return cachedGenerate(ctx, s, key, func() domain.Generated[domain.WouldYouRatherSet] {
		res := generateStructured(ctx, s.llmClient, s.logger, "would_you_rather", wouldYouRatherPrompt(count, category), def,
			"questions", "category", "title", "description")
		if res.IsFallback() {
			return res
		}
		res.Value.Questions = fitQuestions(res.Value.Questions, count)
		return res
	}), nil
}

// fitQuestions descarta preguntas incompletas, completa con defaults y recorta a count.
func fitQuestions(questions []domain.WouldYouRatherQuestion, count int) []domain.WouldYouRatherQuestion {
	out := make([]domain.WouldYouRatherQuestion, 0, count)
	for _, q := range questions {
		if q.OptionA == "" || q.OptionB == "" {
			continue
		}
		if len(out) == count {
			break
		}
		if q.ID == "" {
			q.ID = fmt.Sprintf("q%d", len(out)+1)
		}
		out = append(out, q)
	}
	for i := len(out); i < count && i < len(defaultWouldYouRatherQuestions); i++ {
		out = append(out, defaultWouldYouRatherQuestions[i])
	}
	return out
}

func wouldYouRatherPrompt(count int, category string) string {
	return fmt.Sprintf(`
Generate %[1]d "would you rather" questions related to mental health, wellness, and personal growth.
Each question should present two options that make the player think about their values, preferences, or coping strategies.
The questions should be positive or neutral in tone, not distressing.

Category: %[2]s

Respond ONLY with JSON in this format:
{
  "questions": [
    {
      "id": "q1",
      "option_a": "First option text",
      "option_b": "Second option text",
      "insight_a": "Brief insight about choosing option A",
      "insight_b": "Brief insight about choosing option B"
    }
  ],
  "category": "%[2]s",
  "title": "A title for this set of questions",
  "description": "A brief description of what these questions explore"
}

JSON schema:
%[3]s
`, count, category, describeSchema(&domain.WouldYouRatherSet{}))
}

func DefaultWouldYouRather(count int, category string) domain.WouldYouRatherSet {
	count = ClampQuestionCount(count)
	questions := make([]domain.WouldYouRatherQuestion, count)
	copy(questions, defaultWouldYouRatherQuestions[:count])
	return domain.WouldYouRatherSet{
		Questions:   questions,
		Category:    category,
		Title:       "Mental Wellness Reflections",
		Description: "Explore your preferences and values related to mental wellbeing and personal growth",
	}
}
