package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementLineStatus marks whether a statement line was matched to the books.
type StatementLineStatus string

const (
	LineMatched   StatementLineStatus = "matched"
	LineUnmatched StatementLineStatus = "unmatched"
)

// StatementLine is one line of an external bank statement.
type StatementLine struct {
	StatementDate        time.Time           `json:"statementDate"`
	StatementDescription string              `json:"statementDescription"`
	StatementAmount      decimal.Decimal     `json:"statementAmount"`
	StatementType        string              `json:"statementType"` // deposit, withdrawal, charge, ...
	StatementReference   string              `json:"statementReference"`
	Status               StatementLineStatus `json:"status"`
}

// OutstandingItems explain the gap between book and statement balances.
type OutstandingItems struct {
	OutstandingDeposits    decimal.Decimal `json:"outstandingDeposits"`
	OutstandingWithdrawals decimal.Decimal `json:"outstandingWithdrawals"`
	OutstandingChecks      decimal.Decimal `json:"outstandingChecks"`
	BankCharges            decimal.Decimal `json:"bankCharges"`
	InterestEarned         decimal.Decimal `json:"interestEarned"`
}

// ReconciliationRecord is attached to a reconciliation voucher.
type ReconciliationRecord struct {
	BankAccountID    string          `json:"bankAccount"`
	StatementDate    time.Time       `json:"statementDate"`
	StatementNumber  string          `json:"statementNumber"`
	OpeningBalance   decimal.Decimal `json:"openingBalance"`
	ClosingBalance   decimal.Decimal `json:"closingBalance"`
	BookBalance      decimal.Decimal `json:"bookBalance"`
	StatementBalance decimal.Decimal `json:"statementBalance"`
	OutstandingItems
	Entries []StatementLine `json:"entries"`
}

// Difference is statementBalance - bookBalance.
func (r ReconciliationRecord) Difference() decimal.Decimal {
	return r.StatementBalance.Sub(r.BookBalance)
}

// ReconciliationResult summarises a reconciliation run.
type ReconciliationResult struct {
	Difference       decimal.Decimal `json:"difference"`
	OutstandingTotal decimal.Decimal `json:"outstandingTotal"`
	Residual         decimal.Decimal `json:"residual"` // difference - outstandingTotal
	MatchedCount     int             `json:"matchedCount"`
	UnmatchedCount   int             `json:"unmatchedCount"`
	TotalMatched     decimal.Decimal `json:"totalMatched"`
	TotalUnmatched   decimal.Decimal `json:"totalUnmatched"`
	Balanced         bool            `json:"balanced"`
	Entries          []StatementLine `json:"entries"`
}
