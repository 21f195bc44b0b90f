package accounting

import (
	"fmt"

	"github.com/SscSPs/voucher_ledger/internal/apperrors"
	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConversionInput carries the raw form values of a cross-currency voucher.
// ExchangeRate, CommissionPercentage and Commission are optional. A nil
// Precision rounds to domain.DefaultPrecision; 0 is a zero-decimal currency.
type ConversionInput struct {
	Amount               decimal.Decimal
	ExchangeRate         *decimal.Decimal
	CommissionPercentage *decimal.Decimal
	Commission           *decimal.Decimal
	Precision            *int
}

// ConversionResult holds the derived amounts.
type ConversionResult struct {
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`
	CommissionAmount decimal.Decimal `json:"commissionAmount"`
}

// Convert computes the converted amount and commission for a voucher amount.
// An absent rate means 1.0; a zero or negative rate is rejected rather than
// coerced. A commission percentage wins over an explicit commission.
func Convert(in ConversionInput) (ConversionResult, error) {
	if in.Amount.IsNegative() {
		return ConversionResult{}, fmt.Errorf("%w: amount %s is negative", apperrors.ErrValidation, in.Amount.String())
	}

	rate := decimal.NewFromInt(1)
	if in.ExchangeRate != nil {
		if !in.ExchangeRate.IsPositive() {
			return ConversionResult{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidExchangeRate, in.ExchangeRate.String())
		}
		rate = *in.ExchangeRate
	}

	commission := decimal.Zero
	switch {
	case in.CommissionPercentage != nil:
		if in.CommissionPercentage.IsNegative() {
			return ConversionResult{}, fmt.Errorf("%w: commission percentage %s is negative",
				apperrors.ErrValidation, in.CommissionPercentage.String())
		}
		commission = in.Amount.Mul(*in.CommissionPercentage).Div(hundred)
	case in.Commission != nil:
		if in.Commission.IsNegative() {
			return ConversionResult{}, fmt.Errorf("%w: commission %s is negative",
				apperrors.ErrValidation, in.Commission.String())
		}
		commission = *in.Commission
	}

	precision := domain.DefaultPrecision
	if in.Precision != nil {
		precision = *in.Precision
	}

	return ConversionResult{
		ExchangeRate:     rate,
		ConvertedAmount:  RoundToPrecision(in.Amount.Mul(rate), precision),
		CommissionAmount: RoundToPrecision(commission, precision),
	}, nil
}
