package accounting

import (
	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MatchFunc decides whether a statement line corresponds to a book entry.
type MatchFunc func(line domain.StatementLine) bool

// MatchByStatus trusts the status already carried by the line.
func MatchByStatus(line domain.StatementLine) bool {
	return line.Status == domain.LineMatched
}

// ReconcileInput is everything Reconcile needs; Match defaults to MatchByStatus.
type ReconcileInput struct {
	BookBalance      decimal.Decimal
	StatementBalance decimal.Decimal
	Lines            []domain.StatementLine
	Outstanding      domain.OutstandingItems
	Match            MatchFunc
	Precision        int
}

// OutstandingTotal = deposits - withdrawals - checks + interest - charges.
func OutstandingTotal(o domain.OutstandingItems) decimal.Decimal {
	return o.OutstandingDeposits.
		Sub(o.OutstandingWithdrawals).
		Sub(o.OutstandingChecks).
		Add(o.InterestEarned).
		Sub(o.BankCharges)
}

// Reconcile classifies statement lines and explains the gap between the book
// and statement balances. It never changes any voucher state.
func Reconcile(in ReconcileInput) domain.ReconciliationResult {
	match := in.Match
	if match == nil {
		match = MatchByStatus
	}

	difference := in.StatementBalance.Sub(in.BookBalance)
	outstanding := OutstandingTotal(in.Outstanding)

	result := domain.ReconciliationResult{
		Difference:       difference,
		OutstandingTotal: outstanding,
		Residual:         difference.Sub(outstanding),
		TotalMatched:     decimal.Zero,
		TotalUnmatched:   decimal.Zero,
		Entries:          make([]domain.StatementLine, 0, len(in.Lines)),
	}

	for _, line := range in.Lines {
		if match(line) {
			line.Status = domain.LineMatched
			result.MatchedCount++
			result.TotalMatched = result.TotalMatched.Add(line.StatementAmount)
		} else {
			line.Status = domain.LineUnmatched
			result.UnmatchedCount++
			result.TotalUnmatched = result.TotalUnmatched.Add(line.StatementAmount)
		}
		result.Entries = append(result.Entries, line)
	}

	result.Balanced = WithinTolerance(difference, outstanding, in.Precision)
	return result
}

// ReconcileRecord runs Reconcile over a stored ReconciliationRecord.
func ReconcileRecord(r domain.ReconciliationRecord, match MatchFunc, precision int) domain.ReconciliationResult {
	return Reconcile(ReconcileInput{
		BookBalance:      r.BookBalance,
		StatementBalance: r.StatementBalance,
		Lines:            r.Entries,
		Outstanding:      r.OutstandingItems,
		Match:            match,
		Precision:        precision,
	})
}
