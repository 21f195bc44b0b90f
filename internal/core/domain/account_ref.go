package domain

import (
	"fmt"

	"github.com/SscSPs/voucher_ledger/internal/apperrors"
)

// AccountModel tags which account master collection an entry points into.
type AccountModel string

const (
	BankAccount AccountModel = "BankAccount"
	Supplier    AccountModel = "Supplier"
	Customer    AccountModel = "Customer"
	CashBook    AccountModel = "CashBook"
)

// AllAccountModels lists every supported account model.
func AllAccountModels() []AccountModel {
	return []AccountModel{BankAccount, Supplier, Customer, CashBook}
}

// IsValid reports whether m is one of the supported models.
func (m AccountModel) IsValid() bool {
	switch m {
	case BankAccount, Supplier, Customer, CashBook:
		return true
	}
	return false
}

// ParseAccountModel converts a raw tag into an AccountModel.
func ParseAccountModel(raw string) (AccountModel, error) {
	m := AccountModel(raw)
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnsupportedAccountModel, raw)
	}
	return m, nil
}

// AccountRef is a weak reference into one of the account master collections.
type AccountRef struct {
	Model AccountModel `json:"accountModel"`
	ID    string       `json:"accountId"`
}

func (r AccountRef) String() string {
	return string(r.Model) + ":" + r.ID
}

// Validate checks the reference shape without touching any collaborator.
func (r AccountRef) Validate() error {
	if !r.Model.IsValid() {
		if r.Model == "" {
			return fmt.Errorf("%w: account model is empty", apperrors.ErrMissingAccount)
		}
		return fmt.Errorf("%w: %q", apperrors.ErrUnsupportedAccountModel, string(r.Model))
	}
	if r.ID == "" {
		return fmt.Errorf("%w: %s account id is empty", apperrors.ErrMissingAccount, r.Model)
	}
	return nil
}

// ResolvedAccount is the outcome of an account master lookup.
type ResolvedAccount struct {
	Ref         AccountRef `json:"ref"`
	AccountName string     `json:"accountName"`
	Exists      bool       `json:"exists"`
}
