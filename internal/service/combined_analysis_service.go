package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"companion-llm/internal/domain"
	"companion-llm/internal/llm"
)

var ErrCombinedServiceNotConfigured = errors.New("combined analysis service not configured")

var combinedRequiredKeys = []string{"greeting", "personality_analysis", "current_emotion", "progress", "self_awareness", "suggestion", "affirmation"}

var personalityByEmotion = map[string]string{
	"joy":       "optimistic",
	"happiness": "positive",
	"sadness":   "reflective",
	"anger":     "passionate",
	"fear":      "cautious",
	"anxiety":   "detail-oriented",
	"gratitude": "appreciative",
	"love":      "compassionate",
	"hope":      "forward-thinking",
	"pride":     "confident",
}

var suggestionByTheme = map[string]string{
	"work":          "Consider setting clearer boundaries between work and personal time.",
	"relationships": "Investing time in meaningful connections can boost your emotional well-being.",
	"health":        "Regular physical activity might help balance your emotional state.",
	"stress":        "Try incorporating mindfulness practices into your daily routine.",
	"growth":        "Continue your self-reflection journey through journaling.",
	"goals":         "Breaking down your goals into smaller steps might reduce overwhelm.",
	"family":        "Open communication with family members could strengthen your support system.",
	"general":       "Regular journaling and reflection can help you gain deeper insights.",
}

var affirmationByEmotion = map[string]string{
	"joy":       "I embrace the joy in my life and share it with others.",
	"happiness": "I deserve happiness and create it in my daily life.",
	"sadness":   "My feelings are valid, and this moment will pass.",
	"anger":     "I can transform my passion into positive action.",
	"fear":      "I am stronger than my fears and face challenges with courage.",
	"anxiety":   "I breathe in calmness and breathe out tension.",
	"gratitude": "I appreciate the abundance in my life.",
	"love":      "I am worthy of love and give love freely.",
	"hope":      "Each day brings new opportunities for growth and happiness.",
	"pride":     "I celebrate my achievements while remaining humble.",
	"neutral":   "I am on a journey of self-discovery and growth.",
}

// CombinedAnalysisRequest son los chats y entradas de diario de un usuario.
type CombinedAnalysisRequest struct {
	UserID      string
	ChatHistory []domain.ChatTurn
	JournalData []domain.JournalEntry
}

// CombinedAnalysisService arma el reporte agregado del dashboard.
type CombinedAnalysisService struct {
	logger    *zap.Logger
	llmClient llm.LLMClient
}

func NewCombinedAnalysisService(logger *zap.Logger, llmClient llm.LLMClient) *CombinedAnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CombinedAnalysisService{logger: logger, llmClient: llmClient}
}

func (s *CombinedAnalysisService) Generate(ctx context.Context, req CombinedAnalysisRequest) (domain.Generated[domain.CombinedReport], error) {
	if s == nil || s.llmClient == nil {
		return domain.Generated[domain.CombinedReport]{}, ErrCombinedServiceNotConfigured
	}
	if len(req.ChatHistory) == 0 && len(req.JournalData) == 0 {
		s.logger.Info("combined analysis without data", zap.String("user_id", req.UserID))
		return domain.FromFallback(EmptyDataReport(), ReasonEmptyInput), nil
	}

	start := time.Now()
	emotions, themes, moods := collectSignals(req.ChatHistory, req.JournalData)
	fallback := fallbackCombinedReport(emotions, themes)

	prompt := combinedPrompt(req.ChatHistory, req.JournalData, emotions, themes, moods)
	res := generateStructured(ctx, s.llmClient, s.logger, "combined_analysis", prompt, fallback, combinedRequiredKeys...)
	if !res.IsFallback() {
		res.Value.SelfAwareness.Score = clamp(res.Value.SelfAwareness.Score, 0, 100)
	}

	s.logger.Info("combined analysis generated",
		zap.String("user_id", req.UserID),
		zap.Int("chat_turns", len(req.ChatHistory)),
		zap.Int("journal_entries", len(req.JournalData)),
		zap.Int("emotions", emotions.distinct()),
		zap.Int("themes", themes.distinct()),
		zap.String("source", string(res.Source)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

// collectSignals extrae emociones, temas y estados de animo de chats y diario.
// Del diario se prefiere el analisis previo; el contenido se usa si falta.
func collectSignals(history []domain.ChatTurn, journal []domain.JournalEntry) (*tagCounter, *tagCounter, *tagCounter) {
	emotions, themes, moods := newTagCounter(), newTagCounter(), newTagCounter()

	for _, turn := range history {
		if !turn.IsUser() || strings.TrimSpace(turn.Content) == "" {
			continue
		}
		emotions.add(extractEmotions(turn.Content)...)
		themes.add(extractThemes(turn.Content)...)
	}

	for _, entry := range journal {
		moods.add(entry.Mood)

		analysis, ok := entry.ParsedAnalysis()
		if ok {
			emotions.add(analysis.Emotions...)
			themes.add(analysis.Themes...)
		}
		if strings.TrimSpace(entry.Content) == "" {
			continue
		}
		if !ok || len(analysis.Emotions) == 0 {
			emotions.add(extractEmotions(entry.Content)...)
		}
		if !ok || len(analysis.Themes) == 0 {
			themes.add(extractThemes(entry.Content)...)
		}
	}
	return emotions, themes, moods
}

func combinedPrompt(history []domain.ChatTurn, journal []domain.JournalEntry, emotions, themes, moods *tagCounter) string {
	var b strings.Builder
	b.WriteString("You are a mental health assistant analyzing user data to provide insights.\n\n")
	b.WriteString("DATA SUMMARY:\n")
	fmt.Fprintf(&b, "Chat history contains %d messages.\n", len(history))
	fmt.Fprintf(&b, "Journal data contains %d entries.\n", len(journal))
	fmt.Fprintf(&b, "Most frequent emotions: %s\n", joinCounts(emotions.top(5)))
	fmt.Fprintf(&b, "Most frequent themes: %s\n", joinCounts(themes.top(5)))
	fmt.Fprintf(&b, "Most common mood: %s\n\n", moods.dominant("unknown"))

	b.WriteString("SAMPLE CHAT MESSAGES:\n")
	recent := history
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	for _, turn := range recent {
		if turn.IsUser() {
			fmt.Fprintf(&b, "- %s: %s...\n", turn.Role, truncate(turn.Content, 100))
		}
	}

	b.WriteString("\nSAMPLE JOURNAL ENTRIES:\n")
	entries := journal
	if len(entries) > 5 {
		entries = entries[len(entries)-5:]
	}
	for i, e := range entries {
		mood := e.Mood
		if mood == "" {
			mood = "unknown"
		}
		fmt.Fprintf(&b, "- Entry %d (Mood: %s): %s...\n", i+1, mood, truncate(e.Content, 100))
	}

	b.WriteString(`
Based on this data, generate a comprehensive analysis of the user's mental state, emotional patterns, and provide helpful insights.
Your response must be in valid JSON format with the following structure:

{
  "greeting": "A personalized greeting based on the user's data",
  "personality_analysis": "A brief analysis of the user's personality traits",
  "current_emotion": "The user's current dominant emotion",
  "progress": "An assessment of the user's progress in their mental health journey",
  "self_awareness": {
    "score": A number between 0-100 representing the user's self-awareness level,
    "comment": "A comment explaining the score"
  },
  "suggestion": "A helpful suggestion for the user to improve their mental well-being",
  "affirmation": "A positive affirmation tailored to the user's needs"
}

Ensure your response is ONLY the JSON object with no additional text before or after.
`)
	return b.String()
}

func joinCounts(items []tagCount) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (%d)", it.tag, it.count))
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// fallbackCombinedReport deriva el reporte de los conteos cuando el modelo no responde.
func fallbackCombinedReport(emotions, themes *tagCounter) domain.CombinedReport {
	dominantEmotion := emotions.dominant("neutral")
	dominantTheme := themes.dominant("general")

	personality, ok := personalityByEmotion[strings.ToLower(dominantEmotion)]
	if !ok {
		personality = "thoughtful"
	}
	suggestion, ok := suggestionByTheme[strings.ToLower(dominantTheme)]
	if !ok {
		suggestion = suggestionByTheme["general"]
	}
	affirmation, ok := affirmationByEmotion[strings.ToLower(dominantEmotion)]
	if !ok {
		affirmation = affirmationByEmotion["neutral"]
	}

	score := min(emotions.distinct(), 10)*5 + min(themes.distinct(), 10)*5

	return domain.CombinedReport{
		Greeting:            fmt.Sprintf("Welcome to your insights dashboard. Your recent entries show a focus on %s.", dominantTheme),
		PersonalityAnalysis: personality,
		CurrentEmotion:      dominantEmotion,
		Progress: fmt.Sprintf("You've been expressing a range of emotions, with %s being most prominent. Your journals often discuss %s.",
			dominantEmotion, dominantTheme),
		SelfAwareness: domain.SelfAwareness{
			Score: domain.FlexNumber(min(score, 100)),
			Comment: fmt.Sprintf("Your ability to identify and express various emotions shows good self-awareness. You've recognized %d distinct emotions in your entries.",
				emotions.distinct()),
		},
		Suggestion:  suggestion,
		Affirmation: affirmation,
	}
}

// EmptyDataReport es la respuesta fija cuando no hay chats ni diario.
func EmptyDataReport() domain.CombinedReport {
	return domain.CombinedReport{
		Greeting:            "Welcome to your insights dashboard.",
		PersonalityAnalysis: "analytical",
		CurrentEmotion:      "neutral",
		Progress:            "You're just getting started. Add more data by chatting with your AI companion or writing journal entries.",
		SelfAwareness: domain.SelfAwareness{
			Score:   50,
			Comment: "As you share more, we'll provide deeper insights about your emotional patterns.",
		},
		Suggestion:  "Try using the AI companion chat or journal features regularly to build a more accurate analysis of your emotional well-being.",
		Affirmation: "Every step I take to understand myself better is valuable progress.",
	}
}
