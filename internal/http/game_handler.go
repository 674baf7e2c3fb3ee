package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"companion-llm/internal/service"
)

// GameHandler expone el contenido generado de los juegos.
type GameHandler struct {
	logger *zap.Logger
	games  *service.GameService
}

func NewGameHandler(logger *zap.Logger, games *service.GameService) *GameHandler {
	return &GameHandler{logger: logger, games: games}
}

// WordDrop maneja GET /api/games/word-drop/content.
func (h *GameHandler) WordDrop(c *gin.Context) {
	res, err := h.games.WordDrop(c.Request.Context(), c.Query("difficulty"), c.Query("theme"))
	if err != nil {
		h.fail(c, "word drop", err)
		return
	}
	respondGenerated(c, http.StatusOK, res)
}

// WouldYouRather maneja GET /api/games/would-you-rather/questions.
func (h *GameHandler) WouldYouRather(c *gin.Context) {
	count := service.DefaultWouldYouRatherCount
	if raw := strings.TrimSpace(c.Query("count")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorBody("count must be a number"))
			return
		}
		count = n
	}

	res, err := h.games.WouldYouRather(c.Request.Context(), count, c.Query("category"))
	if err != nil {
		h.fail(c, "would you rather", err)
		return
	}
	respondGenerated(c, http.StatusOK, res)
}

// MemoryMatch maneja GET /games/memory-match/pairs.
func (h *GameHandler) MemoryMatch(c *gin.Context) {
	res, err := h.games.MemoryMatch(c.Request.Context(), c.Query("difficulty"), c.Query("theme"))
	if err != nil {
		h.fail(c, "memory match", err)
		return
	}
	respondGenerated(c, http.StatusOK, res)
}

// Breathing maneja GET /games/breathing-rhythm/exercise.
func (h *GameHandler) Breathing(c *gin.Context) {
	res, err := h.games.Breathing(c.Request.Context(), c.Query("difficulty"), c.Query("focus"))
	if err != nil {
		h.fail(c, "breathing", err)
		return
	}
	respondGenerated(c, http.StatusOK, res)
}

func (h *GameHandler) fail(c *gin.Context, game string, err error) {
	h.logger.Error("game content failed", zap.String("game", game), zap.Error(err))
	c.JSON(http.StatusInternalServerError, errorBody(err.Error()))
}
