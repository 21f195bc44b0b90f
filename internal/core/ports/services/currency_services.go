package services

import (
	"context"

	"github.com/SscSPs/voucher_ledger/internal/dto"
	"github.com/SscSPs/voucher_ledger/internal/utils/accounting"
)

// ConversionSvc exposes the currency conversion engine with currency master lookups.
type ConversionSvc interface {
	// CurrencyPrecision returns the minor-unit digits of a currency.
	CurrencyPrecision(ctx context.Context, currencyCode string) (int, error)

	// ConvertAmounts runs the conversion for a known precision.
	ConvertAmounts(in accounting.ConversionInput) (accounting.ConversionResult, error)

	// Convert serves live form calculations.
	Convert(ctx context.Context, req dto.ConversionRequest) (*dto.ConversionResponse, error)
}
