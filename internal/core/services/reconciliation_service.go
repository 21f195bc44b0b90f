package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/voucher_ledger/internal/apperrors"
	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/voucher_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/voucher_ledger/internal/core/ports/services"
	"github.com/SscSPs/voucher_ledger/internal/dto"
	"github.com/SscSPs/voucher_ledger/internal/utils/accounting"
)

type reconciliationService struct {
	BaseService
	conversion portssvc.ConversionSvc
	parser     portsrepo.StatementParser
	match      accounting.MatchFunc
}

// ReconciliationOption configures the reconciliation service.
type ReconciliationOption func(*reconciliationService)

// WithMatchFunc replaces the default line matcher, which trusts the status
// already carried by each statement line.
func WithMatchFunc(match accounting.MatchFunc) ReconciliationOption {
	return func(s *reconciliationService) {
		s.match = match
	}
}

// NewReconciliationService creates the reconciliation service.
func NewReconciliationService(conversion portssvc.ConversionSvc, parser portsrepo.StatementParser, opts ...ReconciliationOption) portssvc.ReconciliationSvc {
	s := &reconciliationService{
		conversion: conversion,
		parser:     parser,
		match:      accounting.MatchByStatus,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *reconciliationService) Reconcile(ctx context.Context, req dto.ReconcileRequest) (*dto.ReconciliationResponse, error) {
	precision := domain.DefaultPrecision
	if req.Currency != "" {
		p, err := s.conversion.CurrencyPrecision(ctx, req.Currency)
		if err != nil {
			return nil, err
		}
		precision = p
	}

	record := req.ToReconciliationRecord()
	result := accounting.ReconcileRecord(record, s.match, precision)

	s.LogInfo(ctx, "Reconciliation computed",
		slog.String("bank_account", record.BankAccountID),
		slog.String("statement_number", record.StatementNumber),
		slog.String("difference", result.Difference.String()),
		slog.Bool("balanced", result.Balanced))

	resp := dto.ToReconciliationResponse(record, result)
	return &resp, nil
}

func (s *reconciliationService) ImportStatement(ctx context.Context, fileName string, r io.Reader) (*dto.StatementImportResponse, error) {
	if s.parser == nil {
		return nil, fmt.Errorf("%w: statement import is not configured", apperrors.ErrInternal)
	}

	lines, err := s.parser.ParseStatement(ctx, r)
	if err != nil {
		s.LogError(ctx, err, "Failed to parse statement", slog.String("file", fileName))
		return nil, err
	}

	s.LogInfo(ctx, "Statement imported", slog.String("file", fileName), slog.Int("lines", len(lines)))
	return &dto.StatementImportResponse{
		FileName: fileName,
		Count:    len(lines),
		Total:    accounting.SumStatementAmounts(lines),
		Entries:  lines,
	}, nil
}
