package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"companion-llm/internal/domain"
	"companion-llm/internal/repository"
	"companion-llm/internal/service"
)

const reportTooShortMessage = "Not enough messages to generate a report. Minimum 10 required."

// ChatReportReader lee reportes ya generados.
type ChatReportReader interface {
	GetBySessionID(ctx context.Context, sessionID string) (domain.StoredChatReport, error)
}

// ChatHandler mantiene dependencias para el chat y sus reportes.
type ChatHandler struct {
	logger     *zap.Logger
	chatServ   *service.ChatService
	reportServ *service.ChatReportService
	reports    ChatReportReader
	// archive se consulta cuando reports no tiene la sesion; puede ser nil.
	archive ChatReportReader
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(
	logger *zap.Logger,
	chatServ *service.ChatService,
	reportServ *service.ChatReportService,
	reports ChatReportReader,
	archive ChatReportReader,
) *ChatHandler {
	return &ChatHandler{
		logger:     logger,
		chatServ:   chatServ,
		reportServ: reportServ,
		reports:    reports,
		archive:    archive,
	}
}

type chatRequest struct {
	Message     string            `json:"message"`
	SessionID   string            `json:"sessionId"`
	UserID      string            `json:"userId"`
	ChatHistory []domain.ChatTurn `json:"chatHistory"`
}

// PostChat maneja POST /api/chat.
func (h *ChatHandler) PostChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorBody("invalid request"))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, errorBody("Message is required"))
		return
	}

	res, err := h.chatServ.Reply(c.Request.Context(), service.ChatRequest{
		Message:   req.Message,
		SessionID: req.SessionID,
		UserID:    requestUserID(c, req.UserID),
		History:   req.ChatHistory,
	})
	if err != nil {
		h.logger.Error("chat reply failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody(err.Error()))
		return
	}

	setSourceHeaders(c, res.Reply.Source, res.Reply.Reason)
	c.JSON(http.StatusOK, gin.H{"messages": []string{res.Reply.Value}})
}

type chatReportRequest struct {
	SessionID   string            `json:"sessionId"`
	UserID      string            `json:"userId"`
	ChatHistory []domain.ChatTurn `json:"chatHistory"`
}

// PostReport maneja POST /api/chat/report.
func (h *ChatHandler) PostReport(c *gin.Context) {
	var req chatReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat report request", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorBody("invalid request"))
		return
	}
	if len(req.ChatHistory) < service.MinReportTurns {
		c.JSON(http.StatusBadRequest, errorBody(reportTooShortMessage))
		return
	}

	res, err := h.reportServ.Generate(c.Request.Context(), service.ChatReportRequest{
		SessionID: req.SessionID,
		UserID:    requestUserID(c, req.UserID),
		History:   req.ChatHistory,
	})
	if err != nil {
		if errors.Is(err, service.ErrHistoryTooShort) {
			c.JSON(http.StatusBadRequest, errorBody(reportTooShortMessage))
			return
		}
		h.logger.Error("chat report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody(err.Error()))
		return
	}

	c.Header("X-Report-Id", res.Value.ID)
	c.Header("X-Session-Id", res.Value.SessionID)
	setSourceHeaders(c, res.Source, res.Reason)
	c.JSON(http.StatusOK, res.Value.Report)
}

// GetReport maneja GET /api/chat/report/:sessionId.
func (h *ChatHandler) GetReport(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Param("sessionId"))
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, errorBody("sessionId is required"))
		return
	}
	if h.reports == nil {
		c.JSON(http.StatusServiceUnavailable, errorBody("report store not configured"))
		return
	}

	stored, err := h.reports.GetBySessionID(c.Request.Context(), sessionID)
	if errors.Is(err, repository.ErrReportNotFound) && h.archive != nil {
		stored, err = h.archive.GetBySessionID(c.Request.Context(), sessionID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, errorBody("report not found"))
			return
		}
		h.logger.Error("read chat report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody(err.Error()))
		return
	}

	c.Header("X-Report-Id", stored.ID)
	setSourceHeaders(c, stored.Source, "")
	c.JSON(http.StatusOK, stored.Report)
}
