package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"companion-llm/internal/service"
)

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if src := c.Writer.Header().Get(headerContentSource); src != "" {
			fields = append(fields, zap.String("content_source", src))
		}
		logger.Info("request", fields...)
	}
}

// recoveryMiddleware convierte un panic en 500 {error}.
func recoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprint(recovered)})
	})
}

// corsMiddleware permite los origenes configurados; vacio o "*" habilita cualquiera.
// Origenes sin esquema http(s) se descartan; si no queda ninguno se rechazan todos.
func corsMiddleware(logger *zap.Logger, allowed []string) gin.HandlerFunc {
	return cors.New(corsConfig(logger, allowed))
}

func corsConfig(logger *zap.Logger, allowed []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{headerContentSource, headerFallbackReason, "X-Report-Id", "X-Session-Id"},
		MaxAge:        12 * time.Hour,
	}

	var origins []string
	dropped := false
	for _, o := range allowed {
		o = strings.TrimSpace(o)
		switch {
		case o == "":
		case o == "*":
			cfg.AllowAllOrigins = true
			return cfg
		case strings.HasPrefix(o, "http://"), strings.HasPrefix(o, "https://"):
			origins = append(origins, o)
		default:
			dropped = true
			logger.Warn("ignoring cors origin without scheme", zap.String("origin", o))
		}
	}

	switch {
	case len(origins) > 0:
		cfg.AllowOrigins = origins
	case !dropped:
		cfg.AllowAllOrigins = true
	default:
		cfg.AllowOriginFunc = func(string) bool { return false }
	}
	return cfg
}

// rateLimitMiddleware limita por usuario autenticado o, si no hay, por IP.
func rateLimitMiddleware(limiter service.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		key := "ip:" + c.ClientIP()
		if claims, ok := GetAuthClaims(c); ok && claims.UserID != "" {
			key = "user:" + claims.UserID
		}
		if !limiter.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
