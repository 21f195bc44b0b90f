package handlers

import (
	"net/http"

	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/voucher_ledger/internal/core/ports/services"
	"github.com/SscSPs/voucher_ledger/internal/dto"
	"github.com/SscSPs/voucher_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler exposes the account reference resolver.
type accountHandler struct {
	resolver portssvc.AccountResolverSvc
}

func newAccountHandler(resolver portssvc.AccountResolverSvc) *accountHandler {
	return &accountHandler{resolver: resolver}
}

// RegisterAccountRoutes registers the account lookup route.
func RegisterAccountRoutes(rg *gin.RouterGroup, resolver portssvc.AccountResolverSvc) {
	h := newAccountHandler(resolver)
	rg.GET("/accounts/:accountModel/:accountID", h.resolveAccount)
}

// resolveAccount godoc
// @Summary Resolve an account reference
// @Description Looks the account up in the master collection named by accountModel
// @Tags accounts
// @Produce  json
// @Param   accountModel path string true "BankAccount, Supplier, Customer or CashBook"
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.ResolvedAccountResponse
// @Failure 400 {object} map[string]interface{} "Unsupported account model"
// @Failure 404 {object} map[string]interface{} "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountModel}/{accountID} [get]
func (h *accountHandler) resolveAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ref := domain.AccountRef{
		Model: domain.AccountModel(c.Param("accountModel")),
		ID:    c.Param("accountID"),
	}

	resolved, err := h.resolver.Resolve(c.Request.Context(), ref)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToResolvedAccountResponse(resolved))
}
