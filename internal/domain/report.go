package domain

import "time"

// ChatReport resume una sesion de chat completa.
type ChatReport struct {
	Summary             string     `json:"summary"`
	Emotions            []string   `json:"emotions"`
	Themes              []string   `json:"themes"`
	MotivationalClosing string     `json:"motivational_closing"`
	MindfulnessScore    FlexNumber `json:"mindfulness_score"`
	Intensity           FlexNumber `json:"intensity"`
	TriggerOrCatalyst   string     `json:"trigger_or_catalyst"`
	GrowthOpportunity   string     `json:"growth_opportunity"`
}

// StoredChatReport es el reporte persistido junto a sus metadatos.
type StoredChatReport struct {
	ID          string     `json:"id"`
	SessionID   string     `json:"session_id"`
	UserID      string     `json:"user_id,omitempty"`
	Source      Source     `json:"source"`
	TurnCount   int        `json:"turn_count"`
	Report      ChatReport `json:"report"`
	GeneratedAt time.Time  `json:"generated_at"`
}
