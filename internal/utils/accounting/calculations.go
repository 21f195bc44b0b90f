package accounting

import (
	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// normalizePrecision maps a negative (unknown) precision to the default minor-unit count.
func normalizePrecision(precision int) int32 {
	if precision < 0 {
		return domain.DefaultPrecision
	}
	return int32(precision)
}

// RoundToPrecision rounds half away from zero, which is half-up for the
// non-negative amounts handled here.
func RoundToPrecision(amount decimal.Decimal, precision int) decimal.Decimal {
	return amount.Round(normalizePrecision(precision))
}

// WithinTolerance reports whether a and b differ by at most one minor unit.
func WithinTolerance(a, b decimal.Decimal, precision int) bool {
	return a.Sub(b).Abs().LessThanOrEqual(domain.BalanceTolerance(precision))
}

// SumStatementAmounts adds up the statement amounts of the given lines.
func SumStatementAmounts(lines []domain.StatementLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.StatementAmount)
	}
	return total
}
