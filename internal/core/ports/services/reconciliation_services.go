package services

import (
	"context"
	"io"

	"github.com/SscSPs/voucher_ledger/internal/dto"
)

// ReconciliationSvc compares book balances with bank statements.
type ReconciliationSvc interface {
	// Reconcile summarises a ReconciliationRecord payload. It never changes voucher state.
	Reconcile(ctx context.Context, req dto.ReconcileRequest) (*dto.ReconciliationResponse, error)

	// ImportStatement parses an uploaded statement into unmatched lines.
	ImportStatement(ctx context.Context, fileName string, r io.Reader) (*dto.StatementImportResponse, error)
}
