package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/chart_ledger/internal/core/ports/services"
	"github.com/SscSPs/chart_ledger/internal/dto"
	"github.com/SscSPs/chart_ledger/internal/middleware"
	"github.com/SscSPs/chart_ledger/internal/platform/i18n"
	"github.com/gin-gonic/gin"
)

type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	tr             *i18n.Translator
}

func newJournalHandler(js portssvc.JournalSvcFacade, tr *i18n.Translator) *journalHandler {
	return &journalHandler{
		journalService: js,
		tr:             tr,
	}
}

// registerEntryRoutes registers routes for journal entries.
func registerEntryRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, tr *i18n.Translator) {
	h := newJournalHandler(journalService, tr)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.PUT("/:id", h.updateEntry)
	}
}

// createEntry godoc
// @Summary Record a journal entry
// @Description Validates and stores an entry and its detail lines atomically
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry and details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} dto.ErrorResponse "Validation errors, one message per violation"
// @Failure 500 {object} dto.ErrorResponse "Failed to record entry"
// @Security BearerAuth
// @Router /entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		writeBindError(c, h.tr, err)
		return
	}

	logger.Info("Received request to record entry", slog.Int("detail_count", len(req.Details)))

	entry, err := h.journalService.AddEntry(c.Request.Context(), req.ToAddEntryInput(), userID(c))
	if err != nil {
		writeError(c, h.tr, err)
		return
	}

	logger.Info("Entry recorded", slog.String("entry_id", entry.ID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed id"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	entry, err := h.journalService.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.tr, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a journal entry
// @Description Applies the supplied fields when revision matches; supplied details replace the stored set
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   entry body dto.UpdateEntryRequest true "Fields to update"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} dto.ErrorResponse "Validation errors"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Stale revision"
// @Security BearerAuth
// @Router /entries/{id} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("id")
	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEntry", slog.String("error", err.Error()))
		writeBindError(c, h.tr, err)
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), req.ToUpdateEntryInput(id), userID(c))
	if err != nil {
		writeError(c, h.tr, err)
		return
	}

	logger.Info("Entry updated", slog.String("entry_id", entry.ID), slog.String("revision", entry.Revision.String()))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Pages through a domain's entries, newest transaction date first
// @Tags entries
// @Produce  json
// @Param   domain query string false "Domain uuid or code; the default domain when omitted"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid token"
// @Failure 404 {object} dto.ErrorResponse "Domain not found"
// @Security BearerAuth
// @Router /entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, h.tr, err)
		return
	}

	listParams := portssvc.ListEntriesParams{Limit: params.Limit, NextToken: params.NextToken}
	if params.Domain != "" {
		listParams.Domain = dto.RefFromPath(params.Domain)
	}

	entries, next, err := h.journalService.ListEntries(c.Request.Context(), listParams)
	if err != nil {
		writeError(c, h.tr, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListEntriesResponse(entries, next))
}
