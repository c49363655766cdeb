package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain"
)

// statusFor maps the domain error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {message} for err. notFound replaces the message for
// 404s so clients see a stable text instead of the wrapped chain.
func respondError(c *gin.Context, logger *zap.Logger, err error, notFound string) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusNotFound && notFound != "" {
		message = notFound
	}

	_ = c.Error(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		logger.Debug("request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	}

	c.JSON(status, gin.H{"message": message})
}
