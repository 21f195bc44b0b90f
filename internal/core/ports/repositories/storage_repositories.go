package repositories

import (
	"context"
	"io"

	"github.com/SscSPs/voucher_ledger/internal/core/domain"
)

// AttachmentStore is the opaque blob store holding voucher attachments.
type AttachmentStore interface {
	// Upload stores the object under key and returns a URL that resolves to it.
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// StatementParser turns an uploaded bank statement into statement lines.
type StatementParser interface {
	ParseStatement(ctx context.Context, r io.Reader) ([]domain.StatementLine, error)
}
