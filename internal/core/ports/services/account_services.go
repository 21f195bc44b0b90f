package services

import (
	"context"

	"github.com/SscSPs/voucher_ledger/internal/core/domain"
)

// AccountResolverSvc validates account references against the master collections.
type AccountResolverSvc interface {
	// Resolve checks a single reference. Unknown ids fail with apperrors.ErrAccountNotFound.
	Resolve(ctx context.Context, ref domain.AccountRef) (domain.ResolvedAccount, error)

	// ResolveAll resolves each distinct reference once; the first failure aborts.
	ResolveAll(ctx context.Context, refs []domain.AccountRef) (map[domain.AccountRef]domain.ResolvedAccount, error)
}
