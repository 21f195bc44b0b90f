package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/SscSPs/voucher_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSequenceRepository keeps named counters in the voucher_sequences table.
// The upsert takes a row lock, so concurrent callers are serialised by Postgres.
type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(pool *pgxpool.Pool) *PgxSequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceAllocator = (*PgxSequenceRepository)(nil)

// NextValue increments the named counter and returns the new value, starting at 1.
func (r *PgxSequenceRepository) NextValue(ctx context.Context, sequenceName string) (int64, error) {
	query := `
		INSERT INTO voucher_sequences (sequence_name, last_value)
		VALUES ($1, 1)
		ON CONFLICT (sequence_name) DO UPDATE SET last_value = voucher_sequences.last_value + 1
		RETURNING last_value;
	`
	var next int64
	if err := r.Pool.QueryRow(ctx, query, sequenceName).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", sequenceName, err)
	}
	return next, nil
}

// EnsureAtLeast raises the counter to floor. GREATEST keeps a counter that is already ahead.
func (r *PgxSequenceRepository) EnsureAtLeast(ctx context.Context, sequenceName string, floor int64) error {
	query := `
		INSERT INTO voucher_sequences (sequence_name, last_value)
		VALUES ($1, $2)
		ON CONFLICT (sequence_name) DO UPDATE
		SET last_value = GREATEST(voucher_sequences.last_value, EXCLUDED.last_value);
	`
	if _, err := r.Pool.Exec(ctx, query, sequenceName, floor); err != nil {
		return fmt.Errorf("failed to raise sequence %s to %d: %w", sequenceName, floor, err)
	}
	return nil
}
