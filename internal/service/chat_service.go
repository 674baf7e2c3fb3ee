package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"companion-llm/internal/domain"
	"companion-llm/internal/llm"
)

const primaryFallbackText = "I'm here to listen and support you."

var (
	ErrChatServiceNotConfigured = errors.New("chat service not configured")
	ErrEmptyMessage             = errors.New("message is required")
)

// ChatOptions controla el historial usado y si se invocan personas secundarias.
type ChatOptions struct {
	HistoryTurns      int
	SecondaryPersonas bool
}

// ChatRequest es un mensaje entrante con su historial.
type ChatRequest struct {
	Message   string
	SessionID string
	UserID    string
	History   []domain.ChatTurn
}

// ChatResult es la respuesta primaria mas lo que se detecto en el camino.
type ChatResult struct {
	Reply    domain.Generated[string]
	Emotions []string
	Themes   []string
	Invoked  []string
}

// ChatService orquesta deteccion de emociones/temas, personas y seleccion de respuesta.
type ChatService struct {
	logger       *zap.Logger
	llmClient    llm.LLMClient
	personas     PersonaSet
	dispatcher   *Dispatcher
	historyTurns int
	secondary    bool
}

func NewChatService(logger *zap.Logger, llmClient llm.LLMClient, opts ChatOptions) *ChatService {
	return NewChatServiceWithPersonas(logger, llmClient, DefaultPersonas(), opts)
}

func NewChatServiceWithPersonas(logger *zap.Logger, llmClient llm.LLMClient, personas PersonaSet, opts ChatOptions) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.HistoryTurns < 0 {
		opts.HistoryTurns = 0
	}
	return &ChatService{
		logger:       logger,
		llmClient:    llmClient,
		personas:     personas,
		dispatcher:   NewDispatcher(personas),
		historyTurns: opts.HistoryTurns,
		secondary:    opts.SecondaryPersonas,
	}
}

// Reply genera la respuesta del chat. Solo la respuesta de terapia llega al cliente.
func (s *ChatService) Reply(ctx context.Context, req ChatRequest) (ChatResult, error) {
	if s == nil || s.llmClient == nil {
		return ChatResult{}, ErrChatServiceNotConfigured
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return ChatResult{}, ErrEmptyMessage
	}

	start := time.Now()
	history := domain.LastTurns(req.History, s.historyTurns)
	in := PersonaInput{Entry: message}
	var result ChatResult

	emotions, err := s.detectTags(ctx, s.personas.EmotionDetector, in, history, "emotions", "neutral")
	if err != nil {
		return ChatResult{}, err
	}
	in.Emotions = emotions.Value
	result.Invoked = append(result.Invoked, s.personas.EmotionDetector.Name)

	themes, err := s.detectTags(ctx, s.personas.ThemeExtractor, in, history, "themes", "general")
	if err != nil {
		return ChatResult{}, err
	}
	in.Themes = themes.Value
	result.Invoked = append(result.Invoked, s.personas.ThemeExtractor.Name)

	result.Emotions = in.Emotions
	result.Themes = in.Themes

	therapy, err := s.invoke(ctx, s.personas.Therapy, in, history)
	if err != nil {
		return ChatResult{}, err
	}
	result.Invoked = append(result.Invoked, s.personas.Therapy.Name)

	if s.secondary {
		secondaries := append([]Persona{s.personas.Casual}, s.dispatcher.Match(in.Themes)...)
		for _, p := range secondaries {
			out, err := s.invoke(ctx, p, in, history)
			if err != nil {
				return ChatResult{}, err
			}
			result.Invoked = append(result.Invoked, p.Name)
			if out.Err != nil {
				s.logger.Warn("secondary persona failed", zap.String("persona", p.Name), zap.Error(out.Err))
				continue
			}
			s.logger.Debug("secondary persona response",
				zap.String("persona", p.Name),
				zap.String("preview", preview(out.Text, 120)),
			)
		}
	}

	switch {
	case therapy.Err != nil:
		result.Reply = domain.FromFallback(llm.FallbackText(therapy.Err), ReasonModelError)
	case strings.TrimSpace(therapy.Text) == "":
		result.Reply = domain.FromFallback(primaryFallbackText, ReasonEmptyOutput)
	default:
		result.Reply = domain.FromModel(therapy.Text)
	}

	s.logger.Info("chat reply generated",
		zap.String("session_id", req.SessionID),
		zap.String("user_id", req.UserID),
		zap.Strings("emotions", result.Emotions),
		zap.Strings("themes", result.Themes),
		zap.Strings("personas", result.Invoked),
		zap.String("source", string(result.Reply.Source)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// personaOutput es el texto de una persona o el error del modelo al generarlo.
type personaOutput struct {
	Text string
	Err  error
}

// invoke renderiza y ejecuta una persona. El error de retorno es solo de render y
// corta el request; las fallas del modelo viajan en personaOutput.Err.
func (s *ChatService) invoke(ctx context.Context, p Persona, in PersonaInput, history []domain.ChatTurn) (personaOutput, error) {
	prompt, err := p.Render(in)
	if err != nil {
		return personaOutput{}, err
	}
	prompt, err = wrapWithHistory(prompt, history)
	if err != nil {
		return personaOutput{}, err
	}
	text, modelErr := s.llmClient.Generate(ctx, prompt)
	return personaOutput{Text: strings.TrimSpace(text), Err: modelErr}, nil
}

type emotionsPayload struct {
	Emotions []string `json:"emotions"`
}

type themesPayload struct {
	Themes []string `json:"themes"`
}

// detectTags corre el detector de emociones o temas y aplica el default de la llamada.
func (s *ChatService) detectTags(ctx context.Context, p Persona, in PersonaInput, history []domain.ChatTurn, key, def string) (domain.Generated[[]string], error) {
	fallback := []string{def}

	out, err := s.invoke(ctx, p, in, history)
	if err != nil {
		return domain.Generated[[]string]{}, err
	}
	if out.Err != nil {
		s.logger.Warn("tag detection failed", zap.String("persona", p.Name), zap.Error(out.Err))
		return domain.FromFallback(fallback, ReasonModelError), nil
	}
	raw := out.Text

	var tags []string
	var parseErr error
	if key == "emotions" {
		var payload emotionsPayload
		payload, parseErr = DecodeModelJSON[emotionsPayload](raw, key)
		tags = payload.Emotions
	} else {
		var payload themesPayload
		payload, parseErr = DecodeModelJSON[themesPayload](raw, key)
		tags = payload.Themes
	}
	if parseErr != nil {
		s.logger.Warn("tag detection unparseable", zap.String("persona", p.Name), zap.Error(parseErr))
		return domain.FromFallback(fallback, parseFailureReason(parseErr)), nil
	}

	tags = normalizeTags(tags)
	if len(tags) == 0 {
		return domain.FromFallback(fallback, ReasonEmptyOutput), nil
	}
	return domain.FromModel(tags), nil
}
