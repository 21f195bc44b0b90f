package services

import (
	"context"

	"github.com/SscSPs/voucher_ledger/internal/core/domain"
)

// NumberingSvc assigns voucher numbers and refer codes.
type NumberingSvc interface {
	// NextNumber returns a number unique and increasing per voucher type.
	NextNumber(ctx context.Context, voucherType domain.VoucherType) (domain.VoucherNumber, error)

	// AlignSequences raises each type's counter to the highest number already
	// stored, so a fresh or switched counter does not reissue used numbers.
	AlignSequences(ctx context.Context, highest map[domain.VoucherType]int64) error
}
