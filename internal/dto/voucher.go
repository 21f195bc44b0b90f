package dto

import (
	"time"

	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryRequest is one journal-style line as submitted by a client.
// Account fields are checked by the entry validator, not by binding tags,
// so that a missing account surfaces as MissingAccount.
type EntryRequest struct {
	AccountModel string          `json:"accountModel"`
	AccountID    string          `json:"accountId"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Description  string          `json:"description"`
}

// VoucherBody holds the fields shared by create and edit requests.
// Either Entries (journal-style) or FromAccount/ToAccount/Amount (payment-style) is used.
type VoucherBody struct {
	VoucherDate          time.Time           `json:"voucherDate" binding:"required"`
	Currency             string              `json:"currency" binding:"required,len=3"`
	CurrencyExchangeRate *decimal.Decimal    `json:"currencyExchangeRate"`
	Entries              []EntryRequest      `json:"entries"`
	FromAccount          *domain.AccountRef  `json:"fromAccount"`
	ToAccount            *domain.AccountRef  `json:"toAccount"`
	Amount               *decimal.Decimal    `json:"amount" binding:"omitempty,dgte0"`
	Commission           *decimal.Decimal    `json:"commission" binding:"omitempty,dgte0"`
	CommissionPercentage *decimal.Decimal    `json:"commissionPercentage" binding:"omitempty,dgte0"`
	RelatedRefs          []domain.RelatedRef `json:"relatedRefs"`
	Description          string              `json:"description"`
	Notes                string              `json:"notes"`
}

// CreateVoucherRequest defines the data needed to create a voucher.
type CreateVoucherRequest struct {
	VoucherType domain.VoucherType `json:"voucherType" binding:"required,oneof=payment receipt transfer journal_entry opening_balance reconciliation"`
	VoucherBody
	// Submit creates the voucher directly in pending instead of draft.
	Submit         bool                         `json:"submit"`
	Reconciliation *ReconciliationRecordRequest `json:"reconciliation"`
}

// UpdateVoucherRequest replaces the editable content of a draft or pending voucher.
type UpdateVoucherRequest struct {
	Version int64 `json:"version" binding:"required,min=1"`
	VoucherBody
}

// TransitionRequest asks for a lifecycle move.
type TransitionRequest struct {
	Target  domain.VoucherStatus `json:"target" binding:"required"`
	Version int64                `json:"version" binding:"required,min=1"`
}

// TransitionCheckResponse answers a CanTransition query.
type TransitionCheckResponse struct {
	From    domain.VoucherStatus `json:"from"`
	To      domain.VoucherStatus `json:"to"`
	Allowed bool                 `json:"allowed"`
}

// AttachReconciliationRequest attaches or replaces the record on a reconciliation voucher.
type AttachReconciliationRequest struct {
	Version int64                       `json:"version" binding:"required,min=1"`
	Record  ReconciliationRecordRequest `json:"record" binding:"required"`
}

// UploadAttachmentInput is the file part of a multipart request.
type UploadAttachmentInput struct {
	Name        string
	ContentType string
	Size        int64
	Content     []byte
}

// EntryResponse defines the data returned for a voucher entry.
type EntryResponse struct {
	EntryID      string          `json:"entryID"`
	AccountModel string          `json:"accountModel"`
	AccountID    string          `json:"accountId"`
	AccountName  string          `json:"accountName"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Description  string          `json:"description"`
}

// VoucherResponse defines the data returned for a voucher.
type VoucherResponse struct {
	VoucherID            string                       `json:"voucherID"`
	VoucherNumber        int64                        `json:"voucherNumber"`
	ReferCode            string                       `json:"referCode"`
	VoucherType          domain.VoucherType           `json:"voucherType"`
	VoucherDate          time.Time                    `json:"voucherDate"`
	Currency             string                       `json:"currency"`
	CurrencyExchangeRate decimal.Decimal              `json:"currencyExchangeRate"`
	Amount               decimal.Decimal              `json:"amount"`
	ConvertedAmount      decimal.Decimal              `json:"convertedAmount"`
	CommissionPercentage *decimal.Decimal             `json:"commissionPercentage,omitempty"`
	CommissionAmount     decimal.Decimal              `json:"commissionAmount"`
	TotalDebit           decimal.Decimal              `json:"totalDebit"`
	TotalCredit          decimal.Decimal              `json:"totalCredit"`
	Status               domain.VoucherStatus         `json:"status"`
	Entries              []EntryResponse              `json:"entries"`
	RelatedRefs          []domain.RelatedRef          `json:"relatedRefs"`
	Attachments          []domain.Attachment          `json:"attachments"`
	Description          string                       `json:"description"`
	Notes                string                       `json:"notes"`
	Reconciliation       *domain.ReconciliationRecord `json:"reconciliation,omitempty"`
	Version              int64                        `json:"version"`
	CreatedAt            time.Time                    `json:"createdAt"`
	CreatedBy            string                       `json:"createdBy"`
	LastUpdatedAt        time.Time                    `json:"lastUpdatedAt"`
	LastUpdatedBy        string                       `json:"lastUpdatedBy"`
	// AttachmentError is set when the voucher was saved but its attachment upload failed.
	AttachmentError string `json:"attachmentError,omitempty"`
}

// ToEntryResponses converts domain entries to their response DTOs.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = EntryResponse{
			EntryID:      e.EntryID,
			AccountModel: string(e.Model),
			AccountID:    e.ID,
			AccountName:  e.AccountName,
			Debit:        e.Debit,
			Credit:       e.Credit,
			Description:  e.Description,
		}
	}
	return responses
}

// ToVoucherResponse converts a domain.Voucher to VoucherResponse DTO.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	relatedRefs := v.RelatedRefs
	if relatedRefs == nil {
		relatedRefs = []domain.RelatedRef{}
	}
	attachments := v.Attachments
	if attachments == nil {
		attachments = []domain.Attachment{}
	}
	return VoucherResponse{
		VoucherID:            v.VoucherID,
		VoucherNumber:        v.VoucherNumber,
		ReferCode:            v.ReferCode,
		VoucherType:          v.VoucherType,
		VoucherDate:          v.VoucherDate,
		Currency:             v.CurrencyCode,
		CurrencyExchangeRate: v.ExchangeRate,
		Amount:               v.Amount,
		ConvertedAmount:      v.ConvertedAmount,
		CommissionPercentage: v.CommissionPercentage,
		CommissionAmount:     v.CommissionAmount,
		TotalDebit:           v.TotalDebit(),
		TotalCredit:          v.TotalCredit(),
		Status:               v.Status,
		Entries:              ToEntryResponses(v.Entries),
		RelatedRefs:          relatedRefs,
		Attachments:          attachments,
		Description:          v.Description,
		Notes:                v.Notes,
		Reconciliation:       v.Reconciliation,
		Version:              v.Version,
		CreatedAt:            v.CreatedAt,
		CreatedBy:            v.CreatedBy,
		LastUpdatedAt:        v.LastUpdatedAt,
		LastUpdatedBy:        v.LastUpdatedBy,
	}
}
