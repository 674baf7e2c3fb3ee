package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"companion-llm/internal/domain"
	"companion-llm/internal/llm"
)

// MinReportTurns es el minimo de turnos para generar un reporte de chat.
const MinReportTurns = 10

var (
	ErrChatReportServiceNotConfigured = errors.New("chat report service not configured")
	ErrHistoryTooShort                = errors.New("not enough messages to generate a report")
)

var chatReportRequiredKeys = []string{"summary", "emotions", "themes", "motivational_closing", "mindfulness_score", "intensity", "trigger_or_catalyst", "growth_opportunity"}

// ChatReportStore persiste reportes de chat.
type ChatReportStore interface {
	Save(ctx context.Context, report domain.StoredChatReport) error
}

type ChatReportRequest struct {
	SessionID string
	UserID    string
	History   []domain.ChatTurn
}

// ChatReportService genera y guarda el reporte de una sesion de chat.
// store es obligatorio; archive es opcional y sus errores solo se loguean.
type ChatReportService struct {
	logger    *zap.Logger
	llmClient llm.LLMClient
	store     ChatReportStore
	archive   ChatReportStore
}

func NewChatReportService(logger *zap.Logger, llmClient llm.LLMClient, store ChatReportStore, archive ChatReportStore) *ChatReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatReportService{logger: logger, llmClient: llmClient, store: store, archive: archive}
}

func (s *ChatReportService) Generate(ctx context.Context, req ChatReportRequest) (domain.Generated[domain.StoredChatReport], error) {
	if s == nil || s.llmClient == nil || s.store == nil {
		return domain.Generated[domain.StoredChatReport]{}, ErrChatReportServiceNotConfigured
	}
	if len(req.History) < MinReportTurns {
		return domain.Generated[domain.StoredChatReport]{}, ErrHistoryTooShort
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	fallback := fallbackChatReport(req.History)
	res := generateStructured(ctx, s.llmClient, s.logger, "chat_report", chatReportPrompt(req.History), fallback, chatReportRequiredKeys...)
	report := res.Value
	report.MindfulnessScore = clamp(report.MindfulnessScore, 0, 100)
	report.Intensity = clamp(report.Intensity, 0, 10)

	stored := domain.StoredChatReport{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		UserID:      strings.TrimSpace(req.UserID),
		Source:      res.Source,
		TurnCount:   len(req.History),
		Report:      report,
		GeneratedAt: time.Now().UTC(),
	}

	if err := s.store.Save(ctx, stored); err != nil {
		return domain.Generated[domain.StoredChatReport]{}, fmt.Errorf("save chat report: %w", err)
	}
	if s.archive != nil {
		if err := s.archive.Save(ctx, stored); err != nil {
			s.logger.Warn("chat report archive failed", zap.String("session_id", sessionID), zap.Error(err))
		}
	}

	s.logger.Info("chat report generated",
		zap.String("session_id", sessionID),
		zap.String("user_id", stored.UserID),
		zap.Int("turns", stored.TurnCount),
		zap.String("source", string(res.Source)),
	)

	return domain.Generated[domain.StoredChatReport]{Value: stored, Source: res.Source, Reason: res.Reason}, nil
}

func chatReportPrompt(history []domain.ChatTurn) string {
	var b strings.Builder
	b.WriteString("You are a mental health assistant. Review the full conversation below between a user and their companion and write a reflective session report.\n\n")
	b.WriteString("CONVERSATION:\n")
	for _, turn := range history {
		fmt.Fprintf(&b, "%s: %s\n", turn.Speaker(), turn.Content)
	}
	b.WriteString(`
Respond ONLY with a JSON object with these fields:
- summary: (a brief summary of the conversation)
- emotions: (list of the main emotions the user expressed)
- themes: (list of the key themes discussed)
- motivational_closing: (a warm, encouraging closing message for the user)
- mindfulness_score: (a number from 0-100 for the user's awareness and reflection during the session)
- intensity: (a number from 0-10 for the emotional intensity of the session)
- trigger_or_catalyst: (what seems to have triggered the user's feelings)
- growth_opportunity: (one concrete opportunity for growth)

JSON schema:
`)
	b.WriteString(describeSchema(&domain.ChatReport{}))
	b.WriteString("\n\nOnly return the raw JSON object. Do not include any explanation or commentary.")
	return b.String()
}

// fallbackChatReport resume la sesion a partir de palabras clave de los turnos del usuario.
func fallbackChatReport(history []domain.ChatTurn) domain.ChatReport {
	emotions, themes := newTagCounter(), newTagCounter()
	userTurns := 0
	for _, turn := range history {
		if !turn.IsUser() {
			continue
		}
		userTurns++
		emotions.add(extractEmotions(turn.Content)...)
		themes.add(extractThemes(turn.Content)...)
	}

	topEmotions := tagsOf(emotions.top(3))
	if len(topEmotions) == 0 {
		topEmotions = []string{"reflective"}
	}
	topThemes := tagsOf(themes.top(3))
	if len(topThemes) == 0 {
		topThemes = []string{"general"}
	}
	dominantTheme := topThemes[0]

	intensity := 3.0
	if userTurns > 0 {
		intensity = clamp(float64(emotions.distinct())*2+1, 0, 10)
	}

	return domain.ChatReport{
		Summary: fmt.Sprintf("This conversation had %d messages, %d of them from you, mostly about %s.",
			len(history), userTurns, dominantTheme),
		Emotions:            topEmotions,
		Themes:              topThemes,
		MotivationalClosing: "Every conversation is a step toward understanding yourself better. Be proud of showing up for yourself today.",
		MindfulnessScore:    domain.FlexNumber(min(40+emotions.distinct()*5+themes.distinct()*5, 100)),
		Intensity:           domain.FlexNumber(intensity),
		TriggerOrCatalyst:   fmt.Sprintf("Recurring thoughts related to %s.", dominantTheme),
		GrowthOpportunity:   fmt.Sprintf("Try noticing how %s affects your mood and write down one small step you can take.", dominantTheme),
	}
}

func tagsOf(items []tagCount) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.tag)
	}
	return out
}
