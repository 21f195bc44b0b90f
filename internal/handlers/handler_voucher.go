package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/SscSPs/voucher_ledger/internal/apperrors"
	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/voucher_ledger/internal/core/ports/services"
	"github.com/SscSPs/voucher_ledger/internal/dto"
	"github.com/SscSPs/voucher_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// maxAttachmentSize caps uploaded attachment files.
const maxAttachmentSize = 10 << 20

// voucherHandler handles HTTP requests related to vouchers.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

// newVoucherHandler creates a new voucherHandler.
func newVoucherHandler(vs portssvc.VoucherSvcFacade) *voucherHandler {
	return &voucherHandler{
		voucherService: vs,
	}
}

// RegisterVoucherRoutes registers routes related to vouchers.
func RegisterVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) {
	h := newVoucherHandler(voucherService)

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.createVoucher)
		vouchers.GET("/transitions", h.checkTransition)
		vouchers.GET("/:voucherID", h.getVoucher)
		vouchers.PUT("/:voucherID/entries", h.updateVoucherEntries)
		vouchers.POST("/:voucherID/transitions", h.transitionVoucher)
		vouchers.PUT("/:voucherID/reconciliation", h.attachReconciliation)
		vouchers.POST("/:voucherID/attachments", h.uploadAttachment)
	}
}

// createVoucher godoc
// @Summary Create a voucher
// @Description Resolves accounts, converts amounts, validates entries, assigns a number and stores the voucher.
// @Description Send JSON, or multipart/form-data with a `payload` JSON field and an optional `attachment` file.
// @Tags vouchers
// @Accept  json,mpfd
// @Produce  json
// @Param   voucher body dto.CreateVoucherRequest true "Voucher details"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]interface{} "Structural error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Account not found"
// @Failure 409 {object} map[string]interface{} "Numbering conflict"
// @Failure 422 {object} map[string]interface{} "Business rule violated"
// @Failure 500 {object} map[string]string "Failed to create voucher"
// @Security BearerAuth
// @Router /vouchers [post]
func (h *voucherHandler) createVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateVoucherRequest
	var attachment *multipart.FileHeader
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		var err error
		if attachment, err = bindMultipartVoucher(c, &req); err != nil {
			logger.Warn("Failed to bind multipart voucher", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create voucher")
		return
	}

	resp := dto.ToVoucherResponse(voucher)
	if attachment != nil {
		att, err := h.storeAttachment(c, voucher.VoucherID, attachment, creatorUserID)
		if err != nil {
			// the voucher stays; the client retries the upload on its own
			logger.Warn("Voucher created but attachment upload failed",
				slog.String("voucher_id", voucher.VoucherID), slog.String("error", err.Error()))
			resp.AttachmentError = err.Error()
		} else {
			resp.Attachments = append(resp.Attachments, *att)
		}
	}

	logger.Info("Voucher created", slog.String("voucher_id", voucher.VoucherID), slog.String("refer_code", voucher.ReferCode))
	c.JSON(http.StatusCreated, resp)
}

// getVoucher godoc
// @Summary Get a voucher
// @Description Retrieves a voucher with its entries
// @Tags vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} map[string]interface{} "Voucher not found"
// @Failure 500 {object} map[string]string "Failed to retrieve voucher"
// @Security BearerAuth
// @Router /vouchers/{voucherID} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	voucher, err := h.voucherService.GetVoucherByID(c.Request.Context(), voucherID)
	if err != nil {
		respondError(c, logger.With(slog.String("voucher_id", voucherID)), err, "Failed to retrieve voucher")
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// updateVoucherEntries godoc
// @Summary Edit a voucher
// @Description Replaces entries and amounts of a draft or pending voucher
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Param   voucher body dto.UpdateVoucherRequest true "New content and the version that was read"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]interface{} "Structural error"
// @Failure 404 {object} map[string]interface{} "Voucher or account not found"
// @Failure 409 {object} map[string]interface{} "Voucher was modified concurrently"
// @Failure 422 {object} map[string]interface{} "Voucher locked or unbalanced"
// @Security BearerAuth
// @Router /vouchers/{voucherID}/entries [put]
func (h *voucherHandler) updateVoucherEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	var req dto.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateVoucherEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voucher, err := h.voucherService.UpdateVoucherEntries(c.Request.Context(), voucherID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("voucher_id", voucherID)), err, "Failed to update voucher")
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// transitionVoucher godoc
// @Summary Move a voucher through its lifecycle
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Param   transition body dto.TransitionRequest true "Target status and the version that was read"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} map[string]interface{} "Voucher not found"
// @Failure 409 {object} map[string]interface{} "Voucher was modified concurrently"
// @Failure 422 {object} map[string]interface{} "Transition not allowed or entries unbalanced"
// @Security BearerAuth
// @Router /vouchers/{voucherID}/transitions [post]
func (h *voucherHandler) transitionVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransitionVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voucher, err := h.voucherService.TransitionVoucher(c.Request.Context(), voucherID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("voucher_id", voucherID)), err, "Failed to transition voucher")
		return
	}

	logger.Info("Voucher transitioned", slog.String("voucher_id", voucherID), slog.String("status", string(voucher.Status)))
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// checkTransition godoc
// @Summary Check whether a status change is allowed
// @Tags vouchers
// @Produce  json
// @Param   from query string true "Current status"
// @Param   to query string true "Target status"
// @Success 200 {object} dto.TransitionCheckResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Security BearerAuth
// @Router /vouchers/transitions [get]
func (h *voucherHandler) checkTransition(c *gin.Context) {
	from := domain.VoucherStatus(c.Query("from"))
	to := domain.VoucherStatus(c.Query("to"))
	if !from.IsValid() || !to.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown status in from=%q to=%q", from, to)})
		return
	}

	c.JSON(http.StatusOK, dto.TransitionCheckResponse{
		From:    from,
		To:      to,
		Allowed: h.voucherService.CanTransition(from, to),
	})
}

// attachReconciliation godoc
// @Summary Attach a reconciliation record
// @Description Attaches or replaces the ReconciliationRecord of a draft or pending reconciliation voucher
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Param   record body dto.AttachReconciliationRequest true "Record and the version that was read"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]interface{} "Structural error"
// @Failure 404 {object} map[string]interface{} "Voucher or bank account not found"
// @Failure 409 {object} map[string]interface{} "Voucher was modified concurrently"
// @Failure 422 {object} map[string]interface{} "Voucher locked"
// @Security BearerAuth
// @Router /vouchers/{voucherID}/reconciliation [put]
func (h *voucherHandler) attachReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	var req dto.AttachReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AttachReconciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voucher, err := h.voucherService.AttachReconciliation(c.Request.Context(), voucherID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("voucher_id", voucherID)), err, "Failed to attach reconciliation")
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// uploadAttachment godoc
// @Summary Upload a voucher attachment
// @Tags vouchers
// @Accept  mpfd
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Param   attachment formData file true "File to attach"
// @Success 201 {object} domain.Attachment
// @Failure 400 {object} map[string]string "Missing file"
// @Failure 404 {object} map[string]interface{} "Voucher not found"
// @Failure 500 {object} map[string]string "Failed to upload attachment"
// @Security BearerAuth
// @Router /vouchers/{voucherID}/attachments [post]
func (h *voucherHandler) uploadAttachment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	fileHeader, err := c.FormFile("attachment")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "attachment file is required"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	att, err := h.storeAttachment(c, voucherID, fileHeader, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("voucher_id", voucherID)), err, "Failed to upload attachment")
		return
	}

	c.JSON(http.StatusCreated, att)
}

func (h *voucherHandler) storeAttachment(c *gin.Context, voucherID string, fh *multipart.FileHeader, userID string) (*domain.Attachment, error) {
	if fh.Size > maxAttachmentSize {
		return nil, fmt.Errorf("%w: attachment %s exceeds %d bytes", apperrors.ErrValidation, fh.Filename, maxAttachmentSize)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening attachment %s: %w", fh.Filename, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading attachment %s: %w", fh.Filename, err)
	}

	return h.voucherService.UploadAttachment(c.Request.Context(), voucherID, dto.UploadAttachmentInput{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        int64(len(content)),
		Content:     content,
	}, userID)
}

// bindMultipartVoucher reads the payload form field as JSON and returns the
// optional attachment file header.
func bindMultipartVoucher(c *gin.Context, req *dto.CreateVoucherRequest) (*multipart.FileHeader, error) {
	payload := c.PostForm("payload")
	if payload == "" {
		return nil, fmt.Errorf("payload field is required")
	}
	if err := json.Unmarshal([]byte(payload), req); err != nil {
		return nil, err
	}
	if err := binding.Validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	fh, err := c.FormFile("attachment")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	return fh, nil
}
