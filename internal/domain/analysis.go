package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// JournalAnalysis es la salida estructurada del analisis de una entrada de diario.
type JournalAnalysis struct {
	Summary          string     `json:"summary"`
	Emotions         []string   `json:"emotions"`
	Themes           []string   `json:"themes"`
	Insights         []string   `json:"insights"`
	Recommendations  []string   `json:"recommendations"`
	SentimentScore   FlexNumber `json:"sentiment_score"`
	Affirmation      string     `json:"affirmation"`
	MindfulnessScore FlexNumber `json:"mindfulness_score"`
}

// JournalAnalysisRecord es lo que se archiva por cada analisis generado.
type JournalAnalysisRecord struct {
	ID             string          `json:"id"`
	JournalEntryID string          `json:"journal_entry_id,omitempty"`
	UserID         string          `json:"user_id,omitempty"`
	Source         Source          `json:"source"`
	Analysis       JournalAnalysis `json:"analysis"`
	CreatedAt      time.Time       `json:"created_at"`
}

// JournalEntry es una entrada de diario enviada para el analisis combinado.
// Analysis puede llegar como objeto o como string JSON.
type JournalEntry struct {
	ID        string          `json:"id,omitempty"`
	Title     string          `json:"title,omitempty"`
	Content   string          `json:"content"`
	Mood      string          `json:"mood,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
	Analysis  json.RawMessage `json:"analysis,omitempty"`
}

// EntryAnalysis es el subconjunto del analisis previo que interesa al reporte combinado.
type EntryAnalysis struct {
	Emotions []string `json:"emotions"`
	Themes   []string `json:"themes"`
}

// ParsedAnalysis decodifica el analisis adjunto, aceptando objeto o string con JSON.
// Devuelve false si no hay analisis o no se puede leer.
func (e JournalEntry) ParsedAnalysis() (EntryAnalysis, bool) {
	raw := strings.TrimSpace(string(e.Analysis))
	if raw == "" || raw == "null" {
		return EntryAnalysis{}, false
	}

	if strings.HasPrefix(raw, `"`) {
		var inner string
		if err := json.Unmarshal([]byte(raw), &inner); err != nil {
			return EntryAnalysis{}, false
		}
		raw = inner
	}

	var out EntryAnalysis
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return EntryAnalysis{}, false
	}
	return out, true
}

// SelfAwareness agrupa puntaje y comentario del reporte combinado.
type SelfAwareness struct {
	Score   FlexNumber `json:"score"`
	Comment string     `json:"comment"`
}

// CombinedReport es el reporte agregado de chats y diario.
type CombinedReport struct {
	Greeting            string        `json:"greeting"`
	PersonalityAnalysis string        `json:"personality_analysis"`
	CurrentEmotion      string        `json:"current_emotion"`
	Progress            string        `json:"progress"`
	SelfAwareness       SelfAwareness `json:"self_awareness"`
	Suggestion          string        `json:"suggestion"`
	Affirmation         string        `json:"affirmation"`
}
