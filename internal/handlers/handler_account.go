package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/chart_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/chart_ledger/internal/core/ports/services"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
	"github.com/SscSPs/chart_ledger/internal/dto"
	"github.com/SscSPs/chart_ledger/internal/middleware"
	"github.com/SscSPs/chart_ledger/internal/platform/i18n"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	tr             *i18n.Translator
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, tr *i18n.Translator) *accountHandler {
	return &accountHandler{
		accountService: as,
		tr:             tr,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, tr *i18n.Translator) {
	h := newAccountHandler(accountService, tr)

	root := rg.Group("/root")
	{
		root.POST("", h.createRoot)
		root.GET("", h.getRoot)
	}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("/:ref", h.getAccount)
		accounts.GET("/:ref/children", h.listChildren)
		accounts.GET("/:ref/ancestors", h.listAncestors)
		accounts.PUT("/:ref", h.updateAccount)
		accounts.DELETE("/:ref", h.deleteAccount)
	}
}

// createRoot godoc
// @Summary Create the root account
// @Description Initialises the chart of accounts and the default ledger domain
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   root body dto.CreateRootRequest true "Root names"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Ledger already initialised"
// @Failure 500 {object} dto.ErrorResponse "Failed to create root"
// @Security BearerAuth
// @Router /root [post]
func (h *accountHandler) createRoot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRootRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.tr, err)
		return
	}

	root, err := h.accountService.CreateRoot(c.Request.Context(), req.ToCreateRootInput(), userID(c))
	if err != nil {
		writeError(c, h.tr, err)
		return
	}

	logger.Info("Chart of accounts created", slog.String("root_uuid", root.UUID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(root))
}

// getRoot godoc
// @Summary Get the root account
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} dto.ErrorResponse "Ledger not initialised"
// @Security BearerAuth
// @Router /root [get]
func (h *accountHandler) getRoot(c *gin.Context) {
	root, err := h.accountService.LoadRoot(c.Request.Context())
	if err != nil {
		writeError(c, h.tr, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(root))
}

// createAccount godoc
// @Summary Create a new account
// @Description Adds an account under the parent named by parentCode. Omitted polarity flags are inherited.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 404 {object} dto.ErrorResponse "Parent not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate code"
// @Failure 500 {object} dto.ErrorResponse "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		writeBindError(c, h.tr, err)
		return
	}

	logger.Info("Received request to create account", slog.String("code", req.Code), slog.String("parent_code", req.ParentCode))

	account, err := h.accountService.AddAccount(c.Request.Context(), req.ToAddAccountInput(), userID(c))
	if err != nil {
		writeError(c, h.tr, err)
		return
	}

	logger.Info("Account created successfully", slog.String("account_uuid", account.UUID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves an account by uuid or code
// @Tags accounts
// @Produce  json
// @Param   ref path string true "Account uuid or code"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{ref} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccount(c.Request.Context(), dto.RefFromPath(c.Param("ref")))
	if err != nil {
		writeError(c, h.tr, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listChildren godoc
// @Summary List sub-accounts
// @Description Lists the direct sub-accounts of an account ordered by code
// @Tags accounts
// @Produce  json
// @Param   ref path string true "Account uuid or code"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{ref}/children [get]
func (h *accountHandler) listChildren(c *gin.Context) {
	children, err := h.accountService.ListChildren(c.Request.Context(), dto.RefFromPath(c.Param("ref")))
	if err != nil {
		writeError(c, h.tr, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(children)})
}

// listAncestors godoc
// @Summary List ancestors
// @Description Lists the chain from the account's parent up to the root
// @Tags accounts
// @Produce  json
// @Param   ref path string true "Account uuid or code"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{ref}/ancestors [get]
func (h *accountHandler) listAncestors(c *gin.Context) {
	chain, err := h.accountService.Ancestors(c.Request.Context(), dto.RefFromPath(c.Param("ref")))
	if err != nil {
		writeError(c, h.tr, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(chain)})
}

// updateAccount godoc
// @Summary Update an account
// @Description Applies the supplied fields when revision matches the stored one
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   ref path string true "Account uuid or code"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error or cycle"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Stale revision or duplicate code"
// @Security BearerAuth
// @Router /accounts/{ref} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ref := dto.RefFromPath(c.Param("ref"))
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
		writeBindError(c, h.tr, err)
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), req.ToUpdateAccountInput(ref), userID(c))
	if err != nil {
		writeError(c, h.tr, err)
		return
	}

	logger.Info("Account updated successfully", slog.String("account_uuid", account.UUID))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Deletes an account. Sub-accounts block the delete unless cascade is set.
// @Tags accounts
// @Param   ref path string true "Account uuid or code"
// @Param   cascade query bool false "Delete descendants as well"
// @Param   revision query string false "Expected revision"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Has sub-accounts, in use, or stale revision"
// @Security BearerAuth
// @Router /accounts/{ref} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.DeleteAccountParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, h.tr, err)
		return
	}

	in := domain.DeleteAccountInput{
		Ref:      dto.RefFromPath(c.Param("ref")),
		Cascade:  params.Cascade,
		Revision: revision.Token(params.Revision),
	}
	if err := h.accountService.DeleteAccount(c.Request.Context(), in); err != nil {
		writeError(c, h.tr, err)
		return
	}

	logger.Info("Account deleted", slog.String("ref", in.Ref.String()), slog.Bool("cascade", in.Cascade))
	c.Status(http.StatusNoContent)
}
