package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/voucher_ledger/internal/core/ports/services"
	"github.com/SscSPs/voucher_ledger/internal/dto"
	"github.com/SscSPs/voucher_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type conversionHandler struct {
	conversionService portssvc.ConversionSvc
}

func newConversionHandler(cs portssvc.ConversionSvc) *conversionHandler {
	return &conversionHandler{conversionService: cs}
}

// RegisterConversionRoutes registers the live conversion route.
func RegisterConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvc) {
	h := newConversionHandler(conversionService)
	rg.POST("/conversions", h.convert)
}

// convert godoc
// @Summary Convert an amount
// @Description Computes exchange rate, converted amount and commission for a voucher form
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConversionRequest true "Form values"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]interface{} "Invalid input or unknown currency"
// @Failure 422 {object} map[string]interface{} "Invalid exchange rate"
// @Security BearerAuth
// @Router /conversions [post]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.conversionService.Convert(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger.With(slog.String("currency", req.Currency)), err, "Failed to convert amount")
		return
	}

	c.JSON(http.StatusOK, resp)
}
