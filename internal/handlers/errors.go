package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/dto"
	"github.com/gin-gonic/gin"
)

// respondError writes the error body for err. Internal failures get a generic message.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := apperrors.HTTPStatus(err)
	body := dto.ErrorResponse{Error: apperrors.Kind(err)}

	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		body.Message = fallback
		c.JSON(status, body)
		return
	}

	logger.Warn(fallback, slog.String("error", err.Error()), slog.String("kind", body.Error))
	body.Message = err.Error()
	body.Details = apperrors.Details(err)
	c.JSON(status, body)
}

// respondBindError answers a request whose body or query failed validation.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   apperrors.KindValidation,
		Message: "Invalid request format: " + err.Error(),
	})
}

// respondUnauthorized is used when the auth middleware did not leave an actor behind.
func respondUnauthorized(c *gin.Context, logger *slog.Logger) {
	logger.Error("Actor not found in context")
	c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized", Message: "Unauthorized"})
}
