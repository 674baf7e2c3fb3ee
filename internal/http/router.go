package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"companion-llm/internal/service"
)

// RouterConfig reune handlers y middlewares opcionales del router.
type RouterConfig struct {
	Chat    *ChatHandler
	Journal *JournalHandler
	Games   *GameHandler
	System  *SystemHandler

	// Verifier nil deshabilita la autenticacion.
	Verifier *service.TokenVerifier
	// ChatLimiter nil deshabilita el rate limit del chat.
	ChatLimiter    service.RateLimiter
	AllowedOrigins []string
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(logger *zap.Logger, cfg RouterConfig) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), recoveryMiddleware(logger), corsMiddleware(logger, cfg.AllowedOrigins))

	auth := JWTAuthMiddleware(cfg.Verifier)

	r.GET("/api/status", cfg.System.Status)

	api := r.Group("/api", auth)
	api.POST("/chat", rateLimitMiddleware(cfg.ChatLimiter), cfg.Chat.PostChat)
	api.POST("/chat/report", cfg.Chat.PostReport)
	api.GET("/chat/report/:sessionId", cfg.Chat.GetReport)
	api.POST("/transcribe", cfg.System.Transcribe)
	api.POST("/journal/analyze", cfg.Journal.Analyze)
	api.GET("/journal/analysis/:journalEntryId", cfg.Journal.GetAnalysis)
	api.POST("/combined-analysis", cfg.Journal.CombinedAnalysis)
	api.GET("/games/word-drop/content", cfg.Games.WordDrop)
	api.GET("/games/would-you-rather/questions", cfg.Games.WouldYouRather)

	// Estos dos juegos se sirven fuera de /api.
	games := r.Group("/games", auth)
	games.GET("/memory-match/pairs", cfg.Games.MemoryMatch)
	games.GET("/breathing-rhythm/exercise", cfg.Games.Breathing)

	return r
}
