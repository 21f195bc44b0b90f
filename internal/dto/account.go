package dto

import "github.com/SscSPs/voucher_ledger/internal/core/domain"

// ResolvedAccountResponse defines the data returned for an account reference lookup.
type ResolvedAccountResponse struct {
	AccountModel domain.AccountModel `json:"accountModel"`
	AccountID    string              `json:"accountId"`
	AccountName  string              `json:"accountName"`
	Exists       bool                `json:"exists"`
}

// ToResolvedAccountResponse converts a domain.ResolvedAccount to its response DTO.
func ToResolvedAccountResponse(acc domain.ResolvedAccount) ResolvedAccountResponse {
	return ResolvedAccountResponse{
		AccountModel: acc.Ref.Model,
		AccountID:    acc.Ref.ID,
		AccountName:  acc.AccountName,
		Exists:       acc.Exists,
	}
}
