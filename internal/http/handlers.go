package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"companion-llm/internal/service"
)

const simulatedTranscription = "This is a simulated transcription. In a real implementation, we would process the audio data."

// SystemHandler agrupa estado del modelo y transcripcion.
type SystemHandler struct {
	logger *zap.Logger
	status *service.StatusService
}

func NewSystemHandler(logger *zap.Logger, status *service.StatusService) *SystemHandler {
	return &SystemHandler{logger: logger, status: status}
}

// Status maneja GET /api/status.
func (h *SystemHandler) Status(c *gin.Context) {
	report := h.status.Check(c.Request.Context())
	if report.Status != "ok" {
		h.logger.Warn("model backend degraded",
			zap.String("ollama_status", report.OllamaStatus),
			zap.String("current_model", report.CurrentModel),
		)
	}
	c.JSON(http.StatusOK, report)
}

type transcribeRequest struct {
	Audio  string `json:"audio"`
	UserID string `json:"userId"`
}

// Transcribe maneja POST /api/transcribe. Devuelve siempre el mismo texto.
func (h *SystemHandler) Transcribe(c *gin.Context) {
	var req transcribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid transcribe request", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorBody("invalid request"))
		return
	}
	if req.Audio == "" {
		c.JSON(http.StatusBadRequest, errorBody("Audio data is required"))
		return
	}

	h.logger.Info("transcription requested",
		zap.String("user_id", requestUserID(c, req.UserID)),
		zap.Int("audio_chars", len(req.Audio)),
	)
	c.JSON(http.StatusOK, gin.H{"transcription": simulatedTranscription})
}
