package http

import (
	"github.com/gin-gonic/gin"

	"companion-llm/internal/domain"
)

const (
	headerContentSource  = "X-Content-Source"
	headerFallbackReason = "X-Fallback-Reason"
)

// setSourceHeaders expone si el contenido vino del modelo o de un default,
// sin alterar la forma del body.
func setSourceHeaders(c *gin.Context, source domain.Source, reason string) {
	c.Header(headerContentSource, string(source))
	if reason != "" {
		c.Header(headerFallbackReason, reason)
	}
}

func respondGenerated[T any](c *gin.Context, status int, res domain.Generated[T]) {
	setSourceHeaders(c, res.Source, res.Reason)
	c.JSON(status, res.Value)
}

func errorBody(msg string) gin.H {
	return gin.H{"error": msg}
}
