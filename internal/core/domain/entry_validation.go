package domain

import (
	"fmt"

	"github.com/SscSPs/voucher_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest debit/credit gap still treated as balanced:
// one minor unit of a currency with the given precision (0.01 at precision 2).
// Zero-decimal currencies fall back to 0.01, which is stricter than needed
// for integer amounts and keeps an unset precision at the default.
func BalanceTolerance(precision int) decimal.Decimal {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	return decimal.New(1, -int32(precision))
}

// ExceedsPrecision reports whether amount carries more decimal places than a
// currency with the given precision can hold.
func ExceedsPrecision(amount decimal.Decimal, precision int) bool {
	if precision < 0 {
		precision = 0
	}
	return !amount.Equal(amount.Truncate(int32(precision)))
}

// ValidationOptions tunes ValidateEntries for the voucher being checked.
type ValidationOptions struct {
	// RequireTwoEntries enforces the journal-style minimum of two lines.
	RequireTwoEntries bool
	// Precision of the voucher currency. Amounts may not carry more decimal
	// places than this, and it drives the balance tolerance.
	Precision int
}

// ValidateEntries enforces the double-entry invariants over an entry list.
// Rules are checked in order and the first failure is returned:
// too few entries, missing account, invalid split (including amounts finer
// than the currency precision), unbalanced totals.
// Amounts are expected in the voucher currency already.
func ValidateEntries(entries []Entry, opts ValidationOptions) error {
	if opts.RequireTwoEntries && len(entries) < 2 {
		return fmt.Errorf("%w: got %d", apperrors.ErrTooFewEntries, len(entries))
	}

	for i, e := range entries {
		if err := e.AccountRef.Validate(); err != nil {
			return &apperrors.EntryError{Index: i, Err: err}
		}
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, e := range entries {
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			return &apperrors.EntryError{Index: i, Err: fmt.Errorf("%w: negative amount", apperrors.ErrInvalidEntrySplit)}
		}
		if ExceedsPrecision(e.Debit, opts.Precision) || ExceedsPrecision(e.Credit, opts.Precision) {
			return &apperrors.EntryError{Index: i, Err: fmt.Errorf("%w: debit %s, credit %s exceed %d decimal places",
				apperrors.ErrInvalidEntrySplit, e.Debit.String(), e.Credit.String(), opts.Precision)}
		}
		hasDebit := e.Debit.IsPositive()
		hasCredit := e.Credit.IsPositive()
		if hasDebit == hasCredit {
			return &apperrors.EntryError{Index: i, Err: fmt.Errorf("%w: debit %s, credit %s",
				apperrors.ErrInvalidEntrySplit, e.Debit.String(), e.Credit.String())}
		}
		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
	}

	if totalDebit.Sub(totalCredit).Abs().GreaterThan(BalanceTolerance(opts.Precision)) {
		return &apperrors.BalanceError{TotalDebit: totalDebit, TotalCredit: totalCredit}
	}
	return nil
}

// ValidateVoucherEntries applies ValidateEntries with the options implied by
// the voucher type and currency.
func ValidateVoucherEntries(v Voucher) error {
	return ValidateEntries(v.Entries, ValidationOptions{
		RequireTwoEntries: v.VoucherType != ReconciliationVoucher,
		Precision:         v.CurrencyPrecision,
	})
}
