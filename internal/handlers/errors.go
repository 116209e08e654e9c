package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/fleetops_finance/internal/apperrors"
	"github.com/SscSPs/fleetops_finance/internal/dto"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the HTTP surface. fallback is the message used for
// opaque store failures, whose details stay in the log.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	if refusal, ok := apperrors.AsRefusal(err); ok {
		logger.Warn("Operation refused", slog.String("kind", string(refusal.Kind)), slog.Any("reasons", refusal.Reasons))
		c.JSON(http.StatusUnprocessableEntity, dto.RefusalResponse{
			Error:        err.Error(),
			Kind:         refusal.Kind,
			Reasons:      refusal.Reasons,
			LockedPeriod: refusal.LockedPeriod,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Operation forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflicting write", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// bindFailed writes the 400 for a request that did not bind.
func bindFailed(c *gin.Context, logger *slog.Logger, op string, err error) {
	logger.Warn("Failed to bind request for "+op, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}
