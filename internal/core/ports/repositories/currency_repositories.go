package repositories

import (
	"context"

	"github.com/SscSPs/voucher_ledger/internal/core/domain"
)

// CurrencyReader reads the currency master. The core never writes currencies.
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a specific currency by its code.
	// Returns apperrors.ErrNotFound when the code is unknown.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
}
