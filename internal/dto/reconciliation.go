package dto

import (
	"time"

	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatementLineRequest is one bank statement line in a reconciliation payload.
type StatementLineRequest struct {
	StatementDate        time.Time       `json:"statementDate"`
	StatementDescription string          `json:"statementDescription"`
	StatementAmount      decimal.Decimal `json:"statementAmount"`
	StatementType        string          `json:"statementType"`
	StatementReference   string          `json:"statementReference"`
	Status               string          `json:"status" binding:"omitempty,oneof=matched unmatched"`
}

// ReconciliationRecordRequest is the ReconciliationRecord-shaped payload.
// Outstanding amounts default to zero when omitted.
type ReconciliationRecordRequest struct {
	BankAccount            string                 `json:"bankAccount" binding:"required"`
	StatementDate          time.Time              `json:"statementDate"`
	StatementNumber        string                 `json:"statementNumber"`
	OpeningBalance         decimal.Decimal        `json:"openingBalance"`
	ClosingBalance         decimal.Decimal        `json:"closingBalance"`
	BookBalance            decimal.Decimal        `json:"bookBalance"`
	StatementBalance       decimal.Decimal        `json:"statementBalance"`
	OutstandingDeposits    decimal.Decimal        `json:"outstandingDeposits" binding:"dgte0"`
	OutstandingWithdrawals decimal.Decimal        `json:"outstandingWithdrawals" binding:"dgte0"`
	OutstandingChecks      decimal.Decimal        `json:"outstandingChecks" binding:"dgte0"`
	BankCharges            decimal.Decimal        `json:"bankCharges" binding:"dgte0"`
	InterestEarned         decimal.Decimal        `json:"interestEarned" binding:"dgte0"`
	Entries                []StatementLineRequest `json:"entries" binding:"dive"`
}

// ReconcileRequest is the body of POST /reconciliations.
type ReconcileRequest struct {
	ReconciliationRecordRequest
	// Currency selects the balance tolerance; defaults to two decimals.
	Currency string `json:"currency" binding:"omitempty,len=3"`
}

// ReconciliationResponse defines the data returned by a reconciliation run.
type ReconciliationResponse struct {
	BankAccount      string                 `json:"bankAccount"`
	StatementNumber  string                 `json:"statementNumber"`
	Difference       decimal.Decimal        `json:"difference"`
	OutstandingTotal decimal.Decimal        `json:"outstandingTotal"`
	Residual         decimal.Decimal        `json:"residual"`
	Balanced         bool                   `json:"balanced"`
	MatchedCount     int                    `json:"matchedCount"`
	UnmatchedCount   int                    `json:"unmatchedCount"`
	TotalMatched     decimal.Decimal        `json:"totalMatched"`
	TotalUnmatched   decimal.Decimal        `json:"totalUnmatched"`
	Entries          []domain.StatementLine `json:"entries"`
}

// StatementImportResponse lists the lines parsed from an uploaded statement.
type StatementImportResponse struct {
	FileName string                 `json:"fileName"`
	Count    int                    `json:"count"`
	Total    decimal.Decimal        `json:"total"`
	Entries  []domain.StatementLine `json:"entries"`
}

// ToReconciliationRecord converts the request payload to the domain record.
func (r ReconciliationRecordRequest) ToReconciliationRecord() domain.ReconciliationRecord {
	lines := make([]domain.StatementLine, len(r.Entries))
	for i, l := range r.Entries {
		lines[i] = domain.StatementLine{
			StatementDate:        l.StatementDate,
			StatementDescription: l.StatementDescription,
			StatementAmount:      l.StatementAmount,
			StatementType:        l.StatementType,
			StatementReference:   l.StatementReference,
			Status:               domain.StatementLineStatus(l.Status),
		}
	}
	return domain.ReconciliationRecord{
		BankAccountID:    r.BankAccount,
		StatementDate:    r.StatementDate,
		StatementNumber:  r.StatementNumber,
		OpeningBalance:   r.OpeningBalance,
		ClosingBalance:   r.ClosingBalance,
		BookBalance:      r.BookBalance,
		StatementBalance: r.StatementBalance,
		OutstandingItems: domain.OutstandingItems{
			OutstandingDeposits:    r.OutstandingDeposits,
			OutstandingWithdrawals: r.OutstandingWithdrawals,
			OutstandingChecks:      r.OutstandingChecks,
			BankCharges:            r.BankCharges,
			InterestEarned:         r.InterestEarned,
		},
		Entries: lines,
	}
}

// ToReconciliationResponse converts a result to its response DTO.
func ToReconciliationResponse(record domain.ReconciliationRecord, result domain.ReconciliationResult) ReconciliationResponse {
	return ReconciliationResponse{
		BankAccount:      record.BankAccountID,
		StatementNumber:  record.StatementNumber,
		Difference:       result.Difference,
		OutstandingTotal: result.OutstandingTotal,
		Residual:         result.Residual,
		Balanced:         result.Balanced,
		MatchedCount:     result.MatchedCount,
		UnmatchedCount:   result.UnmatchedCount,
		TotalMatched:     result.TotalMatched,
		TotalUnmatched:   result.TotalUnmatched,
		Entries:          result.Entries,
	}
}
