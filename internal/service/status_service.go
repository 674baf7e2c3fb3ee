package service

import (
	"context"
	"fmt"
	"strings"

	"companion-llm/internal/llm"
)

// StatusReport es la respuesta de /api/status.
type StatusReport struct {
	Status          string   `json:"status"`
	OllamaStatus    string   `json:"ollama_status"`
	AvailableModels []string `json:"available_models"`
	CurrentModel    string   `json:"current_model"`
	ModelAvailable  bool     `json:"model_available"`
	APIURL          string   `json:"api_url"`
	Mode            string   `json:"mode"`
	Warning         string   `json:"warning,omitempty"`
	ErrorDetails    string   `json:"error_details,omitempty"`
	Troubleshooting []string `json:"troubleshooting,omitempty"`
}

// StatusService reporta si el backend del modelo responde y tiene el modelo configurado.
type StatusService struct {
	backend llm.Backend
	mode    string
}

func NewStatusService(backend llm.Backend, mode string) *StatusService {
	if mode == "" {
		mode = "production"
	}
	return &StatusService{backend: backend, mode: mode}
}

func (s *StatusService) Check(ctx context.Context) StatusReport {
	report := StatusReport{
		AvailableModels: []string{},
		CurrentModel:    s.backend.Model(),
		APIURL:          s.backend.Endpoint(),
		Mode:            s.mode,
	}

	models, err := s.backend.ListModels(ctx)
	if err != nil {
		report.Status = "warning"
		report.OllamaStatus = "connection error: " + err.Error()
		report.ErrorDetails = err.Error()
		report.Troubleshooting = []string{
			"Make sure Ollama is running with 'ollama serve'",
			"Check if the API URL is correct",
			"Verify there are no firewall or network issues",
			"Error details: " + err.Error(),
		}
		return report
	}

	report.OllamaStatus = "running"
	report.AvailableModels = models
	report.ModelAvailable = hasModel(models, report.CurrentModel)
	if report.ModelAvailable {
		report.Status = "ok"
	} else {
		report.Status = "warning"
		report.Warning = fmt.Sprintf("Model %s is not available. Try pulling it with 'ollama pull %s'", report.CurrentModel, report.CurrentModel)
	}
	return report
}

// hasModel compara nombres tratando "mistral" y "mistral:latest" como iguales.
func hasModel(models []string, want string) bool {
	want = withDefaultTag(want)
	for _, m := range models {
		if withDefaultTag(m) == want {
			return true
		}
	}
	return false
}

func withDefaultTag(name string) string {
	name = strings.TrimSpace(name)
	if name != "" && !strings.Contains(name, ":") {
		return name + ":latest"
	}
	return name
}
