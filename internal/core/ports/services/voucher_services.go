package services

import (
	"context"

	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	"github.com/SscSPs/voucher_ledger/internal/dto"
)

// VoucherReaderSvc defines read operations for voucher data
type VoucherReaderSvc interface {
	// GetVoucherByID retrieves a voucher with its entries.
	GetVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// CanTransition reports whether a lifecycle move is allowed in general.
	CanTransition(from, to domain.VoucherStatus) bool
}

// VoucherWriterSvc defines write operations for voucher data
type VoucherWriterSvc interface {
	// CreateVoucher resolves, converts, validates, numbers and persists a voucher atomically.
	CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error)

	// UpdateVoucherEntries replaces entries and amounts of a draft or pending voucher.
	UpdateVoucherEntries(ctx context.Context, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error)

	// TransitionVoucher applies a lifecycle move.
	TransitionVoucher(ctx context.Context, voucherID string, req dto.TransitionRequest, userID string) (*domain.Voucher, error)

	// AttachReconciliation attaches a record to a reconciliation voucher.
	AttachReconciliation(ctx context.Context, voucherID string, req dto.AttachReconciliationRequest, userID string) (*domain.Voucher, error)

	// UploadAttachment stores a file and links it to the voucher.
	UploadAttachment(ctx context.Context, voucherID string, file dto.UploadAttachmentInput, userID string) (*domain.Attachment, error)
}

// VoucherSvcFacade combines all voucher-related service interfaces
type VoucherSvcFacade interface {
	VoucherReaderSvc
	VoucherWriterSvc
}
