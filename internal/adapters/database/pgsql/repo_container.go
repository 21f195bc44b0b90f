package pgsql

import (
	portsrepo "github.com/SscSPs/voucher_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres-backed repositories. Attachment
// storage, statement parsing and an alternative sequence allocator are
// filled in by the caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool) (*portsrepo.RepositoryProvider, error) {
	masters, err := newPgxAccountMasters(dbPool)
	if err != nil {
		return nil, err
	}

	return &portsrepo.RepositoryProvider{
		VoucherRepo:    newPgxVoucherRepository(dbPool),
		CurrencyRepo:   newPgxCurrencyRepository(dbPool),
		AccountMasters: masters,
		Sequences:      newPgxSequenceRepository(dbPool),
	}, nil
}
