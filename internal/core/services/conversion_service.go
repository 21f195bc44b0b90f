package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/voucher_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/voucher_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/voucher_ledger/internal/core/ports/services"
	"github.com/SscSPs/voucher_ledger/internal/dto"
	"github.com/SscSPs/voucher_ledger/internal/utils/accounting"
	"golang.org/x/text/currency"
)

type conversionService struct {
	BaseService
	currencyRepo portsrepo.CurrencyReader
}

// NewConversionService creates the conversion service.
func NewConversionService(currencyRepo portsrepo.CurrencyReader) portssvc.ConversionSvc {
	return &conversionService{currencyRepo: currencyRepo}
}

// CurrencyPrecision prefers the currency master and falls back to the ISO 4217
// standard scale for codes the master does not carry.
func (s *conversionService) CurrencyPrecision(ctx context.Context, currencyCode string) (int, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))

	cur, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err == nil && cur != nil {
		return cur.Precision, nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to read currency master", slog.String("currency", code))
		return 0, fmt.Errorf("failed to look up currency %s: %w", code, err)
	}

	unit, parseErr := currency.ParseISO(code)
	if parseErr != nil {
		return 0, fmt.Errorf("%w: unknown currency %q", apperrors.ErrValidation, currencyCode)
	}
	scale, _ := currency.Standard.Rounding(unit)
	s.LogDebug(ctx, "Currency not in master, using ISO precision",
		slog.String("currency", code), slog.Int("precision", scale))
	return scale, nil
}

func (s *conversionService) ConvertAmounts(in accounting.ConversionInput) (accounting.ConversionResult, error) {
	return accounting.Convert(in)
}

func (s *conversionService) Convert(ctx context.Context, req dto.ConversionRequest) (*dto.ConversionResponse, error) {
	precision, err := s.CurrencyPrecision(ctx, req.Currency)
	if err != nil {
		return nil, err
	}

	result, err := accounting.Convert(accounting.ConversionInput{
		Amount:               req.Amount,
		ExchangeRate:         req.CurrencyExchangeRate,
		CommissionPercentage: req.CommissionPercentage,
		Commission:           req.Commission,
		Precision:            &precision,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ConversionResponse{
		Currency:             strings.ToUpper(req.Currency),
		Precision:            precision,
		CurrencyExchangeRate: result.ExchangeRate,
		ConvertedAmount:      result.ConvertedAmount,
		CommissionAmount:     result.CommissionAmount,
	}, nil
}
