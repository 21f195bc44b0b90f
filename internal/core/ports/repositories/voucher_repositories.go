package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/voucher_ledger/internal/core/domain"
)

// VoucherReader defines read operations for voucher data
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher and its entries.
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// VoucherExists reports whether a voucher with the given id is stored.
	VoucherExists(ctx context.Context, voucherID string) (bool, error)

	// MaxVoucherNumbers returns the highest stored voucher number per type.
	// Types without vouchers are absent from the map.
	MaxVoucherNumbers(ctx context.Context) (map[domain.VoucherType]int64, error)
}

// VoucherWriter defines write operations for voucher data.
// Every update takes the version the caller read and fails with
// apperrors.ErrConcurrentModification when the stored version moved on.
type VoucherWriter interface {
	// SaveVoucher inserts the voucher header and its entries in one transaction.
	SaveVoucher(ctx context.Context, voucher domain.Voucher) error

	// UpdateVoucher replaces the editable fields and the full entry list.
	UpdateVoucher(ctx context.Context, voucher domain.Voucher, expectedVersion int64) error

	// UpdateVoucherStatus moves the voucher to a new status.
	UpdateVoucherStatus(ctx context.Context, voucherID string, status domain.VoucherStatus, expectedVersion int64, updatedBy string, updatedAt time.Time) error

	// SaveReconciliation attaches or replaces the reconciliation record.
	SaveReconciliation(ctx context.Context, voucherID string, record domain.ReconciliationRecord, expectedVersion int64, updatedBy string, updatedAt time.Time) error

	// AddAttachment appends an attachment reference. It does not bump the version.
	AddAttachment(ctx context.Context, voucherID string, attachment domain.Attachment) error
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}
