package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType identifies the flow a voucher belongs to.
type VoucherType string

const (
	PaymentVoucher        VoucherType = "payment"
	ReceiptVoucher        VoucherType = "receipt"
	TransferVoucher       VoucherType = "transfer"
	JournalEntryVoucher   VoucherType = "journal_entry"
	OpeningBalanceVoucher VoucherType = "opening_balance"
	ReconciliationVoucher VoucherType = "reconciliation"
)

// AllVoucherTypes lists every voucher type.
func AllVoucherTypes() []VoucherType {
	return []VoucherType{
		PaymentVoucher, ReceiptVoucher, TransferVoucher,
		JournalEntryVoucher, OpeningBalanceVoucher, ReconciliationVoucher,
	}
}

// IsValid reports whether t is a known voucher type.
func (t VoucherType) IsValid() bool {
	for _, known := range AllVoucherTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// IsJournalStyle reports whether the voucher carries an explicit entry list.
func (t VoucherType) IsJournalStyle() bool {
	return t == JournalEntryVoucher || t == OpeningBalanceVoucher
}

// IsPaymentStyle reports whether the voucher is modelled as from/to/amount.
func (t VoucherType) IsPaymentStyle() bool {
	return t == PaymentVoucher || t == ReceiptVoucher || t == TransferVoucher
}

// ReferPrefix is the human-readable prefix used in refer codes.
func (t VoucherType) ReferPrefix() string {
	switch t {
	case PaymentVoucher:
		return "PV"
	case ReceiptVoucher:
		return "RV"
	case TransferVoucher:
		return "TV"
	case JournalEntryVoucher:
		return "JV"
	case OpeningBalanceVoucher:
		return "OB"
	case ReconciliationVoucher:
		return "RC"
	}
	return "VC"
}

// VoucherStatus is the lifecycle state of a voucher.
type VoucherStatus string

const (
	StatusDraft      VoucherStatus = "draft"
	StatusPending    VoucherStatus = "pending"
	StatusApproved   VoucherStatus = "approved"
	StatusReconciled VoucherStatus = "reconciled"
	StatusCompleted  VoucherStatus = "completed"
	StatusCancelled  VoucherStatus = "cancelled"
	StatusRejected   VoucherStatus = "rejected"
)

// IsValid reports whether s is a known status.
func (s VoucherStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusReconciled,
		StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// Entry is one debit or credit line of a voucher.
type Entry struct {
	EntryID     string          `json:"entryID"`
	AccountRef                  // accountModel + accountId
	AccountName string          `json:"accountName"` // snapshot taken at write time
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// RelatedRef is a lookup-only link to another record.
type RelatedRef struct {
	RefType string `json:"refType"` // Purchase, Sale, Payment, Voucher
	RefID   string `json:"refId"`
}

// Attachment points at a file held by the blob store.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Voucher is the central accounting record.
type Voucher struct {
	VoucherID            string                `json:"voucherID"`
	VoucherNumber        int64                 `json:"voucherNumber"`
	ReferCode            string                `json:"referCode"`
	VoucherType          VoucherType           `json:"voucherType"`
	VoucherDate          time.Time             `json:"voucherDate"`
	CurrencyCode         string                `json:"currency"`
	CurrencyPrecision    int                   `json:"currencyPrecision"`
	ExchangeRate         decimal.Decimal       `json:"currencyExchangeRate"`
	Amount               decimal.Decimal       `json:"amount"`
	ConvertedAmount      decimal.Decimal       `json:"convertedAmount"`
	CommissionPercentage *decimal.Decimal      `json:"commissionPercentage,omitempty"`
	CommissionAmount     decimal.Decimal       `json:"commissionAmount"`
	Entries              []Entry               `json:"entries"`
	Status               VoucherStatus         `json:"status"`
	RelatedRefs          []RelatedRef          `json:"relatedRefs,omitempty"`
	Attachments          []Attachment          `json:"attachments,omitempty"`
	Description          string                `json:"description"`
	Notes                string                `json:"notes"`
	Reconciliation       *ReconciliationRecord `json:"reconciliation,omitempty"`
	AuditFields
}

// TotalDebit sums the debit side of the voucher.
func (v Voucher) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, e := range v.Entries {
		total = total.Add(e.Debit)
	}
	return total
}

// TotalCredit sums the credit side of the voucher.
func (v Voucher) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, e := range v.Entries {
		total = total.Add(e.Credit)
	}
	return total
}

// ImplicitEntries builds the two-line shape of a payment-style voucher:
// the destination is debited and the source credited.
func ImplicitEntries(from, to AccountRef, amount decimal.Decimal, description string) []Entry {
	return []Entry{
		{AccountRef: to, Debit: amount, Credit: decimal.Zero, Description: description},
		{AccountRef: from, Debit: decimal.Zero, Credit: amount, Description: description},
	}
}

// VoucherNumber is the identifier pair handed out by the numbering service.
type VoucherNumber struct {
	Number    int64  `json:"voucherNumber"`
	ReferCode string `json:"referCode"`
}
