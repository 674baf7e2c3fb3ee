package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"companion-llm/internal/domain"
)

var breathingPatternKeys = []string{"inhale", "hold1", "exhale", "hold2"}

type breathingDefaults struct {
	title       string
	description string
	duration    string
	pattern     domain.BreathingPattern
}

type breathingGuidance struct {
	instructions []string
	benefits     []string
	affirmations []string
}

// Niveles fuera de beginner/intermediate caen en advanced.
func breathingByDifficulty(difficulty string) breathingDefaults {
	switch difficulty {
	case "beginner":
		return breathingDefaults{
			title:       "Equal Breathing",
			description: "A simple breathing technique where inhale and exhale are equal in duration. Perfect for beginners to establish a calming rhythm.",
			duration:    "5",
			pattern:     domain.BreathingPattern{Inhale: 4, Hold1: 0, Exhale: 4, Hold2: 0},
		}
	case "intermediate":
		return breathingDefaults{
			title:       "Extended Exhale",
			description: "A calming technique that emphasizes longer exhales than inhales, which helps activate the parasympathetic nervous system.",
			duration:    "7",
			pattern:     domain.BreathingPattern{Inhale: 4, Hold1: 0, Exhale: 6, Hold2: 0},
		}
	default:
		return breathingDefaults{
			title:       "4-7-8 Breathing",
			description: "A powerful relaxation technique developed by Dr. Andrew Weil that acts as a natural tranquilizer for the nervous system.",
			duration:    "10",
			pattern:     domain.BreathingPattern{Inhale: 4, Hold1: 7, Exhale: 8, Hold2: 0},
		}
	}
}

// Focos fuera de relaxation/focus caen en energy.
func breathingByFocus(focus string) breathingGuidance {
	switch focus {
	case "relaxation":
		return breathingGuidance{
			instructions: []string{
				"Find a comfortable seated position or lie down",
				"Close your eyes and take a normal breath",
				"Begin the breathing pattern, focusing on the counts",
				"Feel your body becoming more relaxed with each breath",
				"Continue for at least 5 minutes",
			},
			benefits: []string{
				"Reduces stress and anxiety",
				"Promotes relaxation",
				"Lowers heart rate and blood pressure",
				"Improves sleep quality",
				"Helps manage stress responses",
			},
			affirmations: []string{
				"I am calm and at peace",
				"With each breath, I release tension",
				"I am safe and relaxed",
				"My mind is becoming quiet and still",
			},
		}
	case "focus":
		return breathingGuidance{
			instructions: []string{
				"Sit in an upright, alert position",
				"Keep your spine straight and shoulders relaxed",
				"Begin the breathing pattern, counting mentally",
				"When your mind wanders, gently bring it back to the breath",
				"Continue for your desired duration",
			},
			benefits: []string{
				"Improves concentration and focus",
				"Reduces mind wandering",
				"Increases mental clarity",
				"Enhances cognitive performance",
				"Helps manage ADHD symptoms",
			},
			affirmations: []string{
				"My mind is clear and focused",
				"I am fully present in this moment",
				"I can direct my attention where I choose",
				"Each breath sharpens my awareness",
			},
		}
	default:
		return breathingGuidance{
			instructions: []string{
				"Sit comfortably with a straight spine",
				"Begin with a few normal breaths",
				"Start the energizing breathing pattern",
				"Focus on the sensation of air entering and leaving your body",
				"Continue for 2-3 minutes, then return to normal breathing",
			},
			benefits: []string{
				"Increases energy and alertness",
				"Improves oxygen flow throughout the body",
				"Enhances mental clarity",
				"Reduces fatigue",
				"Boosts mood and motivation",
			},
			affirmations: []string{
				"I am filled with energy and vitality",
				"Each breath energizes my body and mind",
				"I am awake, alert, and alive",
				"My breath is my source of strength",
			},
		}
	}
}

// Breathing genera un ejercicio de respiracion guiado.
func (s *GameService) Breathing(ctx context.Context, difficulty, focus string) (domain.Generated[domain.BreathingExercise], error) {
	if s == nil || s.llmClient == nil {
		return domain.Generated[domain.BreathingExercise]{}, ErrGameServiceNotConfigured
	}
	difficulty = normalizeParam(difficulty, "beginner")
	focus = normalizeParam(focus, "relaxation")
	def := DefaultBreathingExercise(difficulty, focus)

	return cachedGenerate(ctx, s, cacheKey("breathing", difficulty, focus), func() domain.Generated[domain.BreathingExercise] {
		raw, err := s.llmClient.Generate(ctx, breathingPrompt(difficulty, focus))
		if err != nil {
			s.logger.Warn("breathing model call failed", zap.Error(err))
			return domain.FromFallback(def, ReasonModelError)
		}
		res := ParseOrDefault(raw, def, "title", "description", "difficulty", "focus", "duration", "pattern", "instructions", "benefits", "affirmations")
		if res.IsFallback() {
			return res
		}
		if err := checkPatternKeys(raw); err != nil {
			s.logger.Warn("breathing pattern incomplete", zap.Error(err))
			return domain.FromFallback(def, ReasonMissingKeys)
		}
		return res
	}), nil
}

func checkPatternKeys(raw string) error {
	payload, err := DecodeModelJSON[struct {
		Pattern map[string]json.RawMessage `json:"pattern"`
	}](raw, "pattern")
	if err != nil {
		return err
	}
	if missing := missingKeys(payload.Pattern, breathingPatternKeys); len(missing) > 0 {
		return fmt.Errorf("%w: pattern.%v", ErrMissingKeys, missing)
	}
	return nil
}

func breathingPrompt(difficulty, focus string) string {
	return fmt.Sprintf(`
Generate a guided breathing exercise for mental wellbeing.

Difficulty level: %[1]s
Focus area: %[2]s

Respond ONLY with JSON in this format:
{
  "title": "Name of the breathing exercise",
  "description": "Brief description of the exercise and its benefits",
  "difficulty": "%[1]s",
  "focus": "%[2]s",
  "duration": "Total duration in minutes",
  "pattern": {
    "inhale": 4,
    "hold1": 0,
    "exhale": 6,
    "hold2": 0
  },
  "instructions": ["Step 1 instruction", "Step 2 instruction"],
  "benefits": ["Benefit 1", "Benefit 2"],
  "affirmations": ["Affirmation 1 to think during exercise", "Affirmation 2 to think during exercise"]
}

Pattern values are durations in seconds (0 if there is no hold).
For beginner difficulty, use simpler patterns (e.g., 4-4 or 4-6).
For intermediate difficulty, use moderate patterns (e.g., 4-7-8).
For advanced difficulty, use more complex patterns (e.g., 4-7-8-4).
`, difficulty, focus)
}

func DefaultBreathingExercise(difficulty, focus string) domain.BreathingExercise {
	d := breathingByDifficulty(difficulty)
	g := breathingByFocus(focus)
	return domain.BreathingExercise{
		Title:        d.title,
		Description:  d.description,
		Difficulty:   difficulty,
		Focus:        focus,
		Duration:     domain.FlexString(d.duration),
		Pattern:      d.pattern,
		Instructions: g.instructions,
		Benefits:     g.benefits,
		Affirmations: g.affirmations,
	}
}
