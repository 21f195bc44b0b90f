package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/voucher_ledger/internal/apperrors"
	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/voucher_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/voucher_ledger/internal/core/ports/services"
)

type numberingService struct {
	BaseService
	sequences portsrepo.SequenceAllocator
}

// NewNumberingService creates a numbering service on top of an atomic counter.
func NewNumberingService(sequences portsrepo.SequenceAllocator) portssvc.NumberingSvc {
	return &numberingService{sequences: sequences}
}

// SequenceName is the counter key used for a voucher type.
func SequenceName(voucherType domain.VoucherType) string {
	return "voucher:" + string(voucherType)
}

// FormatReferCode renders the human-readable code, e.g. PV-000042.
func FormatReferCode(voucherType domain.VoucherType, number int64) string {
	return fmt.Sprintf("%s-%06d", voucherType.ReferPrefix(), number)
}

func (s *numberingService) NextNumber(ctx context.Context, voucherType domain.VoucherType) (domain.VoucherNumber, error) {
	if !voucherType.IsValid() {
		return domain.VoucherNumber{}, fmt.Errorf("%w: unknown voucher type %q", apperrors.ErrValidation, voucherType)
	}

	n, err := s.sequences.NextValue(ctx, SequenceName(voucherType))
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate voucher number", slog.String("voucher_type", string(voucherType)))
		return domain.VoucherNumber{}, fmt.Errorf("failed to allocate %s voucher number: %w", voucherType, err)
	}

	number := domain.VoucherNumber{Number: n, ReferCode: FormatReferCode(voucherType, n)}
	s.LogDebug(ctx, "Allocated voucher number",
		slog.String("voucher_type", string(voucherType)),
		slog.String("refer_code", number.ReferCode))
	return number, nil
}

func (s *numberingService) AlignSequences(ctx context.Context, highest map[domain.VoucherType]int64) error {
	for _, voucherType := range domain.AllVoucherTypes() {
		floor, ok := highest[voucherType]
		if !ok || floor <= 0 {
			continue
		}
		if err := s.sequences.EnsureAtLeast(ctx, SequenceName(voucherType), floor); err != nil {
			s.LogError(ctx, err, "Failed to align voucher sequence", slog.String("voucher_type", string(voucherType)))
			return fmt.Errorf("failed to align %s sequence: %w", voucherType, err)
		}
		s.LogInfo(ctx, "Voucher sequence aligned",
			slog.String("voucher_type", string(voucherType)),
			slog.Int64("floor", floor))
	}
	return nil
}
