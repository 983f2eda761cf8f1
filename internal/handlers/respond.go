package handlers

import (
	"log/slog"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"github.com/SscSPs/chart_ledger/internal/dto"
	"github.com/SscSPs/chart_ledger/internal/middleware"
	"github.com/SscSPs/chart_ledger/internal/platform/i18n"
	"github.com/gin-gonic/gin"
)

const msgMalformedRequest = "The request could not be parsed: %s"

// writeError renders err in the caller's language with the status Classify assigns.
func writeError(c *gin.Context, tr *i18n.Translator, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status, code := apperrors.Classify(err)
	if status == apperrors.StatusInternal {
		logger.Error("Request failed", slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.String("status", string(status)), slog.String("error", err.Error()))
	}

	tag := tr.Match(c.GetHeader("Accept-Language"))
	c.Header("Content-Language", tag.String())
	c.JSON(code, dto.NewErrorResponse(string(status), tr.Messages(tag, err)))
}

// writeBindError answers a body or query that could not be decoded.
func writeBindError(c *gin.Context, tr *i18n.Translator, err error) {
	writeError(c, tr, apperrors.NewValidationError(msgMalformedRequest, err.Error()))
}

// userID returns the authenticated subject, or "" when auth is disabled.
func userID(c *gin.Context) string {
	id, _ := middleware.GetUserIDFromContext(c)
	return id
}
