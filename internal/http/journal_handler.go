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

// JournalAnalysisReader lee analisis archivados.
type JournalAnalysisReader interface {
	GetByJournalEntryID(ctx context.Context, journalEntryID string) (domain.JournalAnalysisRecord, error)
}

// JournalHandler atiende el analisis de diario y el reporte combinado.
type JournalHandler struct {
	logger       *zap.Logger
	journalServ  *service.JournalService
	combinedServ *service.CombinedAnalysisService
	analyses     JournalAnalysisReader
}

func NewJournalHandler(
	logger *zap.Logger,
	journalServ *service.JournalService,
	combinedServ *service.CombinedAnalysisService,
	analyses JournalAnalysisReader,
) *JournalHandler {
	return &JournalHandler{
		logger:       logger,
		journalServ:  journalServ,
		combinedServ: combinedServ,
		analyses:     analyses,
	}
}

type journalAnalyzeRequest struct {
	Content        string `json:"content"`
	JournalEntryID string `json:"journalEntryId"`
	UserID         string `json:"userId"`
}

// Analyze maneja POST /api/journal/analyze.
func (h *JournalHandler) Analyze(c *gin.Context) {
	var req journalAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid journal analyze request", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorBody("invalid request"))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, errorBody("Content is required"))
		return
	}

	res, err := h.journalServ.Analyze(c.Request.Context(), service.JournalAnalysisRequest{
		Content:        req.Content,
		JournalEntryID: req.JournalEntryID,
		UserID:         requestUserID(c, req.UserID),
	})
	if err != nil {
		h.logger.Error("journal analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	respondGenerated(c, http.StatusOK, res)
}

// GetAnalysis maneja GET /api/journal/analysis/:journalEntryId.
func (h *JournalHandler) GetAnalysis(c *gin.Context) {
	if h.analyses == nil {
		c.JSON(http.StatusServiceUnavailable, errorBody("analysis archive not configured"))
		return
	}
	entryID := strings.TrimSpace(c.Param("journalEntryId"))

	rec, err := h.analyses.GetByJournalEntryID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, repository.ErrAnalysisNotFound) {
			c.JSON(http.StatusNotFound, errorBody("Analysis not found for this journal entry"))
			return
		}
		h.logger.Error("read journal analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	setSourceHeaders(c, rec.Source, "")
	c.JSON(http.StatusOK, rec.Analysis)
}

type combinedAnalysisRequest struct {
	UserID      string                `json:"userId"`
	ChatHistory []domain.ChatTurn     `json:"chatHistory"`
	JournalData []domain.JournalEntry `json:"journalData"`
}

// CombinedAnalysis maneja POST /api/combined-analysis.
func (h *JournalHandler) CombinedAnalysis(c *gin.Context) {
	var req combinedAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid combined analysis request", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorBody("invalid request"))
		return
	}

	res, err := h.combinedServ.Generate(c.Request.Context(), service.CombinedAnalysisRequest{
		UserID:      requestUserID(c, req.UserID),
		ChatHistory: req.ChatHistory,
		JournalData: req.JournalData,
	})
	if err != nil {
		h.logger.Error("combined analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	respondGenerated(c, http.StatusOK, res)
}
