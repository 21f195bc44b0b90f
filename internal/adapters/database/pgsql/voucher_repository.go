package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/voucher_ledger/internal/apperrors"
	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/voucher_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/voucher_ledger/internal/models"
	"github.com/SscSPs/voucher_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const voucherColumns = `
	voucher_id, voucher_number, refer_code, voucher_type, voucher_date,
	currency_code, currency_precision, exchange_rate, amount, converted_amount,
	commission_percentage, commission_amount, status, related_refs, attachments,
	description, notes, reconciliation,
	created_at, created_by, last_updated_at, last_updated_by, version`

const insertEntryQuery = `
	INSERT INTO voucher_entries (
		entry_id, voucher_id, line_no, account_model, account_id, account_name,
		debit, credit, description
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`

type PgxVoucherRepository struct {
	BaseRepository
}

// newPgxVoucherRepository creates a new repository for vouchers and their entries.
func newPgxVoucherRepository(pool *pgxpool.Pool) *PgxVoucherRepository {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var (
	_ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)
	_ portsrepo.TransactionManager      = (*PgxVoucherRepository)(nil)
)

// SaveVoucher inserts the voucher header and its entries in one transaction.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher) error {
	modelVoucher, err := mapping.ToModelVoucher(voucher)
	if err != nil {
		return apperrors.NewAppError(500, "failed to map voucher "+voucher.VoucherID, err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	query := `
		INSERT INTO vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err = tx.Exec(ctx, query,
		modelVoucher.VoucherID,
		modelVoucher.VoucherNumber,
		modelVoucher.ReferCode,
		modelVoucher.VoucherType,
		modelVoucher.VoucherDate,
		modelVoucher.CurrencyCode,
		modelVoucher.CurrencyPrecision,
		modelVoucher.ExchangeRate,
		modelVoucher.Amount,
		modelVoucher.ConvertedAmount,
		modelVoucher.CommissionPercentage,
		modelVoucher.CommissionAmount,
		modelVoucher.Status,
		modelVoucher.RelatedRefs,
		modelVoucher.Attachments,
		modelVoucher.Description,
		modelVoucher.Notes,
		modelVoucher.Reconciliation,
		modelVoucher.CreatedAt,
		modelVoucher.CreatedBy,
		modelVoucher.LastUpdatedAt,
		modelVoucher.LastUpdatedBy,
		modelVoucher.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: voucher %s or refer code %s", apperrors.ErrDuplicate, modelVoucher.VoucherID, modelVoucher.ReferCode)
		}
		return apperrors.NewAppError(500, "failed to insert voucher "+modelVoucher.VoucherID, err)
	}

	if err := r.insertEntries(ctx, tx, voucher.VoucherID, voucher.Entries); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateVoucher rewrites the editable header fields and replaces the entry list.
func (r *PgxVoucherRepository) UpdateVoucher(ctx context.Context, voucher domain.Voucher, expectedVersion int64) error {
	modelVoucher, err := mapping.ToModelVoucher(voucher)
	if err != nil {
		return apperrors.NewAppError(500, "failed to map voucher "+voucher.VoucherID, err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE vouchers SET
			voucher_date = $3,
			currency_code = $4,
			currency_precision = $5,
			exchange_rate = $6,
			amount = $7,
			converted_amount = $8,
			commission_percentage = $9,
			commission_amount = $10,
			related_refs = $11,
			description = $12,
			notes = $13,
			last_updated_at = $14,
			last_updated_by = $15,
			version = version + 1
		WHERE voucher_id = $1 AND version = $2;
	`
	tag, err := tx.Exec(ctx, query,
		modelVoucher.VoucherID,
		expectedVersion,
		modelVoucher.VoucherDate,
		modelVoucher.CurrencyCode,
		modelVoucher.CurrencyPrecision,
		modelVoucher.ExchangeRate,
		modelVoucher.Amount,
		modelVoucher.ConvertedAmount,
		modelVoucher.CommissionPercentage,
		modelVoucher.CommissionAmount,
		modelVoucher.RelatedRefs,
		modelVoucher.Description,
		modelVoucher.Notes,
		modelVoucher.LastUpdatedAt,
		modelVoucher.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update voucher "+modelVoucher.VoucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.versionMiss(ctx, tx, modelVoucher.VoucherID, expectedVersion)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM voucher_entries WHERE voucher_id = $1;`, modelVoucher.VoucherID); err != nil {
		return apperrors.NewAppError(500, "failed to clear entries of voucher "+modelVoucher.VoucherID, err)
	}
	if err := r.insertEntries(ctx, tx, voucher.VoucherID, voucher.Entries); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateVoucherStatus moves the voucher to a new status.
func (r *PgxVoucherRepository) UpdateVoucherStatus(ctx context.Context, voucherID string, status domain.VoucherStatus, expectedVersion int64, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE vouchers
		SET status = $3, last_updated_at = $4, last_updated_by = $5, version = version + 1
		WHERE voucher_id = $1 AND version = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, voucherID, expectedVersion, string(status), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of voucher "+voucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.versionMiss(ctx, r.Pool, voucherID, expectedVersion)
	}
	return nil
}

// SaveReconciliation attaches or replaces the reconciliation record.
func (r *PgxVoucherRepository) SaveReconciliation(ctx context.Context, voucherID string, record domain.ReconciliationRecord, expectedVersion int64, updatedBy string, updatedAt time.Time) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode reconciliation for voucher "+voucherID, err)
	}

	query := `
		UPDATE vouchers
		SET reconciliation = $3, last_updated_at = $4, last_updated_by = $5, version = version + 1
		WHERE voucher_id = $1 AND version = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, voucherID, expectedVersion, doc, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save reconciliation for voucher "+voucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.versionMiss(ctx, r.Pool, voucherID, expectedVersion)
	}
	return nil
}

// AddAttachment appends an attachment to the jsonb array. The version is left untouched.
func (r *PgxVoucherRepository) AddAttachment(ctx context.Context, voucherID string, attachment domain.Attachment) error {
	doc, err := json.Marshal([]domain.Attachment{attachment})
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode attachment for voucher "+voucherID, err)
	}

	query := `
		UPDATE vouchers
		SET attachments = COALESCE(attachments, '[]'::jsonb) || $2::jsonb
		WHERE voucher_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, voucherID, doc)
	if err != nil {
		return apperrors.NewAppError(500, "failed to add attachment to voucher "+voucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindVoucherByID retrieves a voucher and its entries ordered by line number.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE voucher_id = $1;`

	var m models.Voucher
	err := r.Pool.QueryRow(ctx, query, voucherID).Scan(
		&m.VoucherID,
		&m.VoucherNumber,
		&m.ReferCode,
		&m.VoucherType,
		&m.VoucherDate,
		&m.CurrencyCode,
		&m.CurrencyPrecision,
		&m.ExchangeRate,
		&m.Amount,
		&m.ConvertedAmount,
		&m.CommissionPercentage,
		&m.CommissionAmount,
		&m.Status,
		&m.RelatedRefs,
		&m.Attachments,
		&m.Description,
		&m.Notes,
		&m.Reconciliation,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find voucher by id %s: %w", voucherID, err)
	}

	entries, err := r.findEntries(ctx, voucherID)
	if err != nil {
		return nil, err
	}

	voucher, err := mapping.ToDomainVoucher(m, entries)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to map voucher "+voucherID, err)
	}
	return &voucher, nil
}

// VoucherExists reports whether a voucher with the given id is stored.
func (r *PgxVoucherRepository) VoucherExists(ctx context.Context, voucherID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM vouchers WHERE voucher_id = $1);`, voucherID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check voucher %s: %w", voucherID, err)
	}
	return exists, nil
}

// MaxVoucherNumbers returns the highest voucher number stored for each type.
func (r *PgxVoucherRepository) MaxVoucherNumbers(ctx context.Context) (map[domain.VoucherType]int64, error) {
	rows, err := r.Pool.Query(ctx, `SELECT voucher_type, MAX(voucher_number) FROM vouchers GROUP BY voucher_type;`)
	if err != nil {
		return nil, fmt.Errorf("failed to read voucher number high-water marks: %w", err)
	}
	defer rows.Close()

	highest := make(map[domain.VoucherType]int64)
	for rows.Next() {
		var voucherType string
		var number int64
		if err := rows.Scan(&voucherType, &number); err != nil {
			return nil, fmt.Errorf("failed to scan voucher number high-water mark: %w", err)
		}
		highest[domain.VoucherType(voucherType)] = number
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read voucher number high-water marks: %w", err)
	}
	return highest, nil
}

func (r *PgxVoucherRepository) findEntries(ctx context.Context, voucherID string) ([]models.VoucherEntry, error) {
	query := `
		SELECT entry_id, voucher_id, line_no, account_model, account_id, account_name,
		       debit, credit, description
		FROM voucher_entries
		WHERE voucher_id = $1
		ORDER BY line_no;
	`
	rows, err := r.Pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries of voucher %s: %w", voucherID, err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.VoucherEntry, error) {
		var e models.VoucherEntry
		err := row.Scan(
			&e.EntryID,
			&e.VoucherID,
			&e.LineNo,
			&e.AccountModel,
			&e.AccountID,
			&e.AccountName,
			&e.Debit,
			&e.Credit,
			&e.Description,
		)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan entries of voucher %s: %w", voucherID, err)
	}
	return entries, nil
}

func (r *PgxVoucherRepository) insertEntries(ctx context.Context, tx pgx.Tx, voucherID string, entries []domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, e := range mapping.ToModelVoucherEntries(voucherID, entries) {
		batch.Queue(insertEntryQuery,
			e.EntryID,
			e.VoucherID,
			e.LineNo,
			e.AccountModel,
			e.AccountID,
			e.AccountName,
			e.Debit,
			e.Credit,
			e.Description,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert entries for voucher "+voucherID, err)
	}
	return nil
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// versionMiss explains why a version-guarded update touched no rows.
func (r *PgxVoucherRepository) versionMiss(ctx context.Context, q querier, voucherID string, expectedVersion int64) error {
	var current int64
	err := q.QueryRow(ctx, `SELECT version FROM vouchers WHERE voucher_id = $1;`, voucherID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to read version of voucher %s: %w", voucherID, err)
	}
	return fmt.Errorf("%w: voucher %s is at version %d, expected %d",
		apperrors.ErrConcurrentModification, voucherID, current, expectedVersion)
}
