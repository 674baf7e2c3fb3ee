package domain

import "strings"

const (
	RoleUser      = "USER"
	RoleAssistant = "ASSISTANT"
)

// ChatTurn es un turno del historial tal como lo envia el frontend.
type ChatTurn struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// IsUser indica si el turno fue escrito por el usuario.
func (t ChatTurn) IsUser() bool {
	return strings.EqualFold(strings.TrimSpace(t.Role), RoleUser)
}

// Speaker devuelve la etiqueta usada al volcar el historial en un prompt.
func (t ChatTurn) Speaker() string {
	if t.IsUser() {
		return "User"
	}
	return "Assistant"
}

// LastTurns recorta el historial a los ultimos n turnos sin copiar.
func LastTurns(history []ChatTurn, n int) []ChatTurn {
	if n <= 0 || len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
