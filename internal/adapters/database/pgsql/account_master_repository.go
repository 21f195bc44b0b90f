package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/voucher_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// masterTable names the table and display column backing one account model.
type masterTable struct {
	table      string
	nameColumn string
}

// accountMasterTables is the only source of table names interpolated into SQL.
var accountMasterTables = map[domain.AccountModel]masterTable{
	domain.BankAccount: {table: "bank_accounts", nameColumn: "account_title"},
	domain.Supplier:    {table: "suppliers", nameColumn: "name"},
	domain.Customer:    {table: "customers", nameColumn: "name"},
	domain.CashBook:    {table: "cash_books", nameColumn: "name"},
}

// PgxAccountMasterRepository reads one account master collection.
type PgxAccountMasterRepository struct {
	BaseRepository
	model domain.AccountModel
	query string
}

var _ portsrepo.AccountMasterReader = (*PgxAccountMasterRepository)(nil)

func newPgxAccountMasterRepository(pool *pgxpool.Pool, model domain.AccountModel) (*PgxAccountMasterRepository, error) {
	t, ok := accountMasterTables[model]
	if !ok {
		return nil, fmt.Errorf("no master table for account model %q", model)
	}
	return &PgxAccountMasterRepository{
		BaseRepository: BaseRepository{Pool: pool},
		model:          model,
		query:          fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1;`, t.nameColumn, t.table),
	}, nil
}

// newPgxAccountMasters builds a reader for every supported account model.
func newPgxAccountMasters(pool *pgxpool.Pool) (portsrepo.AccountMasters, error) {
	masters := make(portsrepo.AccountMasters, len(accountMasterTables))
	for _, model := range domain.AllAccountModels() {
		repo, err := newPgxAccountMasterRepository(pool, model)
		if err != nil {
			return nil, err
		}
		masters[model] = repo
	}
	return masters, nil
}

// FindAccountName returns the display name stored for accountID.
func (r *PgxAccountMasterRepository) FindAccountName(ctx context.Context, accountID string) (string, bool, error) {
	var name string
	err := r.Pool.QueryRow(ctx, r.query, accountID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to look up %s %s: %w", r.model, accountID, err)
	}
	return name, true, nil
}
