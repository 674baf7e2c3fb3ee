package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"companion-llm/internal/domain"
	"companion-llm/internal/llm"
)

var (
	ErrJournalServiceNotConfigured = errors.New("journal service not configured")
	ErrEmptyJournalContent         = errors.New("journal content is required")
)

var (
	positiveWords = []string{"happy", "good", "great", "love", "enjoy", "wonderful", "excited", "grateful"}
	negativeWords = []string{"sad", "bad", "angry", "upset", "worried", "anxious", "stressed", "frustrated"}
)

// JournalAnalysisArchive guarda analisis generados; es opcional.
type JournalAnalysisArchive interface {
	Save(ctx context.Context, rec domain.JournalAnalysisRecord) error
}

// JournalAnalysisRequest es una entrada de diario a analizar.
type JournalAnalysisRequest struct {
	Content        string
	JournalEntryID string
	UserID         string
}

type JournalService struct {
	logger    *zap.Logger
	llmClient llm.LLMClient
	archive   JournalAnalysisArchive
}

func NewJournalService(logger *zap.Logger, llmClient llm.LLMClient, archive JournalAnalysisArchive) *JournalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalService{logger: logger, llmClient: llmClient, archive: archive}
}

// Analyze pide al modelo el analisis de la entrada; ante cualquier falla usa la
// heuristica de palabras clave. Los campos faltantes se completan con la heuristica.
func (s *JournalService) Analyze(ctx context.Context, req JournalAnalysisRequest) (domain.Generated[domain.JournalAnalysis], error) {
	if s == nil || s.llmClient == nil {
		return domain.Generated[domain.JournalAnalysis]{}, ErrJournalServiceNotConfigured
	}
	if strings.TrimSpace(req.Content) == "" {
		return domain.Generated[domain.JournalAnalysis]{}, ErrEmptyJournalContent
	}

	fallback := FallbackJournalAnalysis(req.Content)
	res := s.generate(ctx, req.Content, fallback)

	s.logger.Info("journal analysis generated",
		zap.String("journal_entry_id", req.JournalEntryID),
		zap.String("user_id", req.UserID),
		zap.Strings("emotions", firstN(res.Value.Emotions, 3)),
		zap.Float64("sentiment_score", float64(res.Value.SentimentScore)),
		zap.String("source", string(res.Source)),
	)

	if s.archive != nil {
		rec := domain.JournalAnalysisRecord{
			ID:             uuid.NewString(),
			JournalEntryID: req.JournalEntryID,
			UserID:         req.UserID,
			Source:         res.Source,
			Analysis:       res.Value,
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.archive.Save(ctx, rec); err != nil {
			s.logger.Warn("journal analysis archive failed", zap.Error(err))
		}
	}
	return res, nil
}

func (s *JournalService) generate(ctx context.Context, content string, fallback domain.JournalAnalysis) domain.Generated[domain.JournalAnalysis] {
	raw, err := s.llmClient.Generate(ctx, journalPrompt(content))
	if err != nil {
		s.logger.Warn("journal analysis model call failed", zap.Error(err))
		return domain.FromFallback(fallback, ReasonModelError)
	}

	// Se decodifica sin claves requeridas: lo que falte se completa con el fallback.
	parsed, err := DecodeModelJSON[journalAnalysisPayload](raw)
	if err != nil {
		s.logger.Warn("journal analysis unparseable", zap.Error(err), zap.String("raw_preview", preview(raw, 200)))
		return domain.FromFallback(fallback, parseFailureReason(err))
	}
	if parsed.empty() {
		return domain.FromFallback(fallback, ReasonMissingKeys)
	}
	return domain.FromModel(parsed.merge(fallback))
}

// journalAnalysisPayload usa punteros para distinguir campos ausentes.
type journalAnalysisPayload struct {
	Summary          *string            `json:"summary"`
	Emotions         []string           `json:"emotions"`
	Themes           []string           `json:"themes"`
	Insights         []string           `json:"insights"`
	Recommendations  []string           `json:"recommendations"`
	SentimentScore   *domain.FlexNumber `json:"sentiment_score"`
	Affirmation      *string            `json:"affirmation"`
	MindfulnessScore *domain.FlexNumber `json:"mindfulness_score"`
}

func (p journalAnalysisPayload) empty() bool {
	return p.Summary == nil && p.Emotions == nil && p.Themes == nil && p.Insights == nil &&
		p.Recommendations == nil && p.SentimentScore == nil && p.Affirmation == nil && p.MindfulnessScore == nil
}

func (p journalAnalysisPayload) merge(def domain.JournalAnalysis) domain.JournalAnalysis {
	out := def
	if p.Summary != nil && strings.TrimSpace(*p.Summary) != "" {
		out.Summary = *p.Summary
	}
	if len(p.Emotions) > 0 {
		out.Emotions = p.Emotions
	}
	if len(p.Themes) > 0 {
		out.Themes = p.Themes
	}
	if len(p.Insights) > 0 {
		out.Insights = p.Insights
	}
	if len(p.Recommendations) > 0 {
		out.Recommendations = p.Recommendations
	}
	if p.SentimentScore != nil {
		out.SentimentScore = clamp(*p.SentimentScore, -1, 1)
	}
	if p.Affirmation != nil && strings.TrimSpace(*p.Affirmation) != "" {
		out.Affirmation = *p.Affirmation
	}
	if p.MindfulnessScore != nil {
		out.MindfulnessScore = clamp(*p.MindfulnessScore, 0, 100)
	}
	return out
}

func journalPrompt(content string) string {
	var b strings.Builder
	b.WriteString("You are a mental health journaling coach. Analyze the following journal entry.\n\n")
	fmt.Fprintf(&b, "Entry:\n\"%s\"\n\n", content)
	b.WriteString("Previous entries:\n[]\n\n")
	b.WriteString("Respond ONLY in valid JSON format with the following fields:\n")
	b.WriteString("- summary: (a brief summary of the journal entry)\n")
	b.WriteString("- emotions: (list of emotions detected in the entry, at least 3)\n")
	b.WriteString("- themes: (list of key themes or topics in the entry, at least 3)\n")
	b.WriteString("- insights: (list of 3-5 insights or observations about the entry)\n")
	b.WriteString("- recommendations: (list of 3-4 actionable recommendations based on the entry)\n")
	b.WriteString("- sentiment_score: (a number from -1 to 1 representing the sentiment, where -1 is very negative and 1 is very positive)\n")
	b.WriteString("- affirmation: (generate an affirmation for the person to feel better and happy)\n")
	b.WriteString("- mindfulness_score: (a score from 0-100 evaluating the user's awareness, reflection, and presence in their entry)\n\n")
	b.WriteString("JSON schema:\n")
	b.WriteString(describeSchema(&domain.JournalAnalysis{}))
	b.WriteString("\n\nOnly return a raw JSON object. Do not include any explanation or commentary.")
	return b.String()
}

// FallbackJournalAnalysis es el analisis heuristico usado cuando el modelo no sirve.
func FallbackJournalAnalysis(content string) domain.JournalAnalysis {
	wordCount := len(strings.Fields(content))
	lower := strings.ToLower(content)

	pos, neg := 0, 0
	for _, w := range positiveWords {
		pos += strings.Count(lower, w)
	}
	for _, w := range negativeWords {
		neg += strings.Count(lower, w)
	}
	sentiment := 0.0
	if total := pos + neg; total > 0 {
		sentiment = float64(pos-neg) / float64(total)
	}

	return domain.JournalAnalysis{
		Summary:  fmt.Sprintf("This is a %d-word journal entry that expresses the author's thoughts and feelings.", wordCount),
		Emotions: []string{"reflective", "thoughtful", "expressive"},
		Themes:   []string{"self-reflection", "daily experience", "personal thoughts"},
		Insights: []string{
			"The journal entry shows a willingness to engage in self-reflection.",
			"Writing down thoughts is an important step in processing emotions.",
			"Regular journaling can help track personal growth over time.",
		},
		Recommendations: []string{
			"Continue the practice of regular journaling.",
			"Try exploring specific emotions in more depth in future entries.",
			"Consider setting aside a specific time each day for reflection.",
		},
		SentimentScore:   domain.FlexNumber(clamp(sentiment, -1, 1)),
		Affirmation:      "My thoughts and feelings are valid, and I am growing through self-reflection.",
		MindfulnessScore: 65,
	}
}

func clamp[T ~float64](v, lo, hi T) T {
	if math.IsNaN(float64(v)) {
		return lo
	}
	return T(math.Max(float64(lo), math.Min(float64(hi), float64(v))))
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
