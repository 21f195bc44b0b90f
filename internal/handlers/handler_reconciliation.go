package handlers

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	portssvc "github.com/SscSPs/voucher_ledger/internal/core/ports/services"
	"github.com/SscSPs/voucher_ledger/internal/dto"
	"github.com/SscSPs/voucher_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxStatementSize caps uploaded bank statements.
const maxStatementSize = 5 << 20

type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvc
}

func newReconciliationHandler(rs portssvc.ReconciliationSvc) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: rs}
}

// RegisterReconciliationRoutes registers the bank reconciliation routes.
func RegisterReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvc) {
	h := newReconciliationHandler(reconciliationService)

	reconciliations := rg.Group("/reconciliations")
	{
		reconciliations.POST("", h.reconcile)
		reconciliations.POST("/statements/import", h.importStatement)
	}
}

// reconcile godoc
// @Summary Reconcile a bank statement against the books
// @Description Classifies statement lines and reports difference, outstanding total and residual. Nothing is stored.
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   record body dto.ReconcileRequest true "Reconciliation record"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Security BearerAuth
// @Router /reconciliations [post]
func (h *reconciliationHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Reconcile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.reconciliationService.Reconcile(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to reconcile statement")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// importStatement godoc
// @Summary Import a bank statement
// @Description Parses the first sheet of an .xlsx statement into unmatched statement lines
// @Tags reconciliations
// @Accept  mpfd
// @Produce  json
// @Param   file formData file true "Statement workbook (.xlsx)"
// @Success 200 {object} dto.StatementImportResponse
// @Failure 400 {object} map[string]interface{} "Missing or unreadable file"
// @Security BearerAuth
// @Router /reconciliations/statements/import [post]
func (h *reconciliationHandler) importStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "statement file is required"})
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "statement must be an .xlsx workbook"})
		return
	}
	if fh.Size > maxStatementSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "statement file is too large"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		logger.Error("Failed to open uploaded statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read statement"})
		return
	}
	defer f.Close()

	resp, err := h.reconciliationService.ImportStatement(c.Request.Context(), fh.Filename, f)
	if err != nil {
		respondError(c, logger.With(slog.String("file", fh.Filename)), err, "Failed to import statement")
		return
	}

	logger.Info("Statement imported", slog.String("file", fh.Filename), slog.Int("lines", resp.Count))
	c.JSON(http.StatusOK, resp)
}
