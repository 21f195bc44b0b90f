package repositories

import (
	"context"

	"github.com/SscSPs/voucher_ledger/internal/core/domain"
)

// AccountMasterReader looks up accounts in one master collection
// (bank accounts, suppliers, customers or cash books).
type AccountMasterReader interface {
	// FindAccountName returns the display name of the account, or
	// found=false when the id does not exist in this collection.
	FindAccountName(ctx context.Context, accountID string) (name string, found bool, err error)
}

// AccountMasters maps every AccountModel to the reader of its collection.
type AccountMasters map[domain.AccountModel]AccountMasterReader
