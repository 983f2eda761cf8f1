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

// scopeHandler serves ledger domains and sub-journals.
type scopeHandler struct {
	scopeService portssvc.ScopeSvcFacade
	tr           *i18n.Translator
}

func registerScopeRoutes(rg *gin.RouterGroup, scopeService portssvc.ScopeSvcFacade, tr *i18n.Translator) {
	h := &scopeHandler{scopeService: scopeService, tr: tr}

	domains := rg.Group("/domains")
	{
		domains.POST("", h.createDomain)
		domains.GET("/:ref", h.getDomain)
	}

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("/:ref", h.getJournal)
	}
}

// createDomain godoc
// @Summary Create a ledger domain
// @Tags scope
// @Accept  json
// @Produce  json
// @Param   domain body dto.CreateDomainRequest true "Domain details"
// @Success 201 {object} dto.DomainResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Duplicate code"
// @Security BearerAuth
// @Router /domains [post]
func (h *scopeHandler) createDomain(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.tr, err)
		return
	}

	d, err := h.scopeService.AddDomain(c.Request.Context(), req.ToAddDomainInput(), userID(c))
	if err != nil {
		writeError(c, h.tr, err)
		return
	}

	logger.Info("Ledger domain created", slog.String("domain_uuid", d.UUID), slog.String("code", d.Code))
	c.JSON(http.StatusCreated, dto.ToDomainResponse(d))
}

// getDomain godoc
// @Summary Get a ledger domain
// @Tags scope
// @Produce  json
// @Param   ref path string true "Domain uuid or code"
// @Success 200 {object} dto.DomainResponse
// @Failure 404 {object} dto.ErrorResponse "Domain not found"
// @Security BearerAuth
// @Router /domains/{ref} [get]
func (h *scopeHandler) getDomain(c *gin.Context) {
	d, err := h.scopeService.GetDomain(c.Request.Context(), dto.RefFromPath(c.Param("ref")))
	if err != nil {
		writeError(c, h.tr, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDomainResponse(d))
}

// createJournal godoc
// @Summary Create a sub-journal
// @Tags scope
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalRequest true "Journal details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error or unknown domain"
// @Failure 409 {object} dto.ErrorResponse "Duplicate code"
// @Security BearerAuth
// @Router /journals [post]
func (h *scopeHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.tr, err)
		return
	}

	j, err := h.scopeService.AddJournal(c.Request.Context(), req.ToAddJournalInput(), userID(c))
	if err != nil {
		writeError(c, h.tr, err)
		return
	}

	logger.Info("Sub-journal created", slog.String("journal_uuid", j.UUID), slog.String("code", j.Code))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(j))
}

// getJournal godoc
// @Summary Get a sub-journal
// @Tags scope
// @Produce  json
// @Param   ref path string true "Journal uuid or code"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} dto.ErrorResponse "Journal not found"
// @Security BearerAuth
// @Router /journals/{ref} [get]
func (h *scopeHandler) getJournal(c *gin.Context) {
	j, err := h.scopeService.GetJournal(c.Request.Context(), dto.RefFromPath(c.Param("ref")))
	if err != nil {
		writeError(c, h.tr, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(j))
}
