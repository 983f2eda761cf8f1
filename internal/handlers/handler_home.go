package handlers

import (
	"errors"
	"net/http"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/chart_ledger/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// getHealth godoc
// @Summary Show the status of server.
// @Description Reports whether the server is up and the chart of accounts exists.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func getHealth(accounts portssvc.AccountReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, err := accounts.LoadRoot(c.Request.Context())
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"status": "ok", "initialized": true})
		case errors.Is(err, apperrors.ErrNotInitialized):
			c.JSON(http.StatusOK, gin.H{"status": "ok", "initialized": false})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		}
	}
}
