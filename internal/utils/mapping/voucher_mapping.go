package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	"github.com/SscSPs/voucher_ledger/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelVoucher converts a domain Voucher to its header row.
// Entries are mapped separately with ToModelVoucherEntries.
func ToModelVoucher(d domain.Voucher) (models.Voucher, error) {
	m := models.Voucher{
		VoucherID:         d.VoucherID,
		VoucherNumber:     d.VoucherNumber,
		ReferCode:         d.ReferCode,
		VoucherType:       string(d.VoucherType),
		VoucherDate:       d.VoucherDate,
		CurrencyCode:      d.CurrencyCode,
		CurrencyPrecision: d.CurrencyPrecision,
		ExchangeRate:      d.ExchangeRate,
		Amount:            d.Amount,
		ConvertedAmount:   d.ConvertedAmount,
		CommissionAmount:  d.CommissionAmount,
		Status:            string(d.Status),
		Description:       d.Description,
		Notes:             d.Notes,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
	if d.CommissionPercentage != nil {
		m.CommissionPercentage = decimal.NewNullDecimal(*d.CommissionPercentage)
	}

	var err error
	if m.RelatedRefs, err = marshalList(d.RelatedRefs); err != nil {
		return models.Voucher{}, fmt.Errorf("encoding related refs: %w", err)
	}
	if m.Attachments, err = marshalList(d.Attachments); err != nil {
		return models.Voucher{}, fmt.Errorf("encoding attachments: %w", err)
	}
	if d.Reconciliation != nil {
		if m.Reconciliation, err = json.Marshal(d.Reconciliation); err != nil {
			return models.Voucher{}, fmt.Errorf("encoding reconciliation: %w", err)
		}
	}
	return m, nil
}

// ToDomainVoucher rebuilds a domain Voucher from its header row and entry rows.
func ToDomainVoucher(m models.Voucher, entries []models.VoucherEntry) (domain.Voucher, error) {
	d := domain.Voucher{
		VoucherID:         m.VoucherID,
		VoucherNumber:     m.VoucherNumber,
		ReferCode:         m.ReferCode,
		VoucherType:       domain.VoucherType(m.VoucherType),
		VoucherDate:       m.VoucherDate,
		CurrencyCode:      m.CurrencyCode,
		CurrencyPrecision: m.CurrencyPrecision,
		ExchangeRate:      m.ExchangeRate,
		Amount:            m.Amount,
		ConvertedAmount:   m.ConvertedAmount,
		CommissionAmount:  m.CommissionAmount,
		Status:            domain.VoucherStatus(m.Status),
		Description:       m.Description,
		Notes:             m.Notes,
		Entries:           ToDomainVoucherEntries(entries),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	if m.CommissionPercentage.Valid {
		pct := m.CommissionPercentage.Decimal
		d.CommissionPercentage = &pct
	}

	if len(m.RelatedRefs) > 0 {
		if err := json.Unmarshal(m.RelatedRefs, &d.RelatedRefs); err != nil {
			return domain.Voucher{}, fmt.Errorf("decoding related refs of %s: %w", m.VoucherID, err)
		}
	}
	if len(m.Attachments) > 0 {
		if err := json.Unmarshal(m.Attachments, &d.Attachments); err != nil {
			return domain.Voucher{}, fmt.Errorf("decoding attachments of %s: %w", m.VoucherID, err)
		}
	}
	if len(m.Reconciliation) > 0 {
		var rec domain.ReconciliationRecord
		if err := json.Unmarshal(m.Reconciliation, &rec); err != nil {
			return domain.Voucher{}, fmt.Errorf("decoding reconciliation of %s: %w", m.VoucherID, err)
		}
		d.Reconciliation = &rec
	}
	return d, nil
}

// ToModelVoucherEntries converts entries to rows, numbering lines in order.
func ToModelVoucherEntries(voucherID string, entries []domain.Entry) []models.VoucherEntry {
	rows := make([]models.VoucherEntry, len(entries))
	for i, e := range entries {
		rows[i] = models.VoucherEntry{
			EntryID:      e.EntryID,
			VoucherID:    voucherID,
			LineNo:       i + 1,
			AccountModel: string(e.Model),
			AccountID:    e.ID,
			AccountName:  e.AccountName,
			Debit:        e.Debit,
			Credit:       e.Credit,
			Description:  e.Description,
		}
	}
	return rows
}

// ToDomainVoucherEntries converts rows (already ordered by line_no) to entries.
func ToDomainVoucherEntries(rows []models.VoucherEntry) []domain.Entry {
	entries := make([]domain.Entry, len(rows))
	for i, r := range rows {
		entries[i] = domain.Entry{
			EntryID:     r.EntryID,
			AccountRef:  domain.AccountRef{Model: domain.AccountModel(r.AccountModel), ID: r.AccountID},
			AccountName: r.AccountName,
			Debit:       r.Debit,
			Credit:      r.Credit,
			Description: r.Description,
		}
	}
	return entries
}

// marshalList encodes a slice as a JSON array, never as null.
func marshalList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
