package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher is a row of the vouchers table. Related refs, attachments and
// the reconciliation record are stored as jsonb documents.
type Voucher struct {
	VoucherID            string              `db:"voucher_id"`
	VoucherNumber        int64               `db:"voucher_number"`
	ReferCode            string              `db:"refer_code"`
	VoucherType          string              `db:"voucher_type"`
	VoucherDate          time.Time           `db:"voucher_date"`
	CurrencyCode         string              `db:"currency_code"`
	CurrencyPrecision    int                 `db:"currency_precision"`
	ExchangeRate         decimal.Decimal     `db:"exchange_rate"`
	Amount               decimal.Decimal     `db:"amount"`
	ConvertedAmount      decimal.Decimal     `db:"converted_amount"`
	CommissionPercentage decimal.NullDecimal `db:"commission_percentage"`
	CommissionAmount     decimal.Decimal     `db:"commission_amount"`
	Status               string              `db:"status"`
	RelatedRefs          []byte              `db:"related_refs"`
	Attachments          []byte              `db:"attachments"`
	Description          string              `db:"description"`
	Notes                string              `db:"notes"`
	Reconciliation       []byte              `db:"reconciliation"` // nil when absent
	AuditFields
}

// VoucherEntry is a row of the voucher_entries table.
type VoucherEntry struct {
	EntryID      string          `db:"entry_id"`
	VoucherID    string          `db:"voucher_id"`
	LineNo       int             `db:"line_no"`
	AccountModel string          `db:"account_model"`
	AccountID    string          `db:"account_id"`
	AccountName  string          `db:"account_name"`
	Debit        decimal.Decimal `db:"debit"`
	Credit       decimal.Decimal `db:"credit"`
	Description  string          `db:"description"`
}
