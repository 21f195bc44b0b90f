package dto

import "github.com/shopspring/decimal"

// ConversionRequest carries the live form values of an exchange voucher.
type ConversionRequest struct {
	Amount               decimal.Decimal  `json:"amount" binding:"dgte0"`
	Currency             string           `json:"currency" binding:"required,len=3"`
	CurrencyExchangeRate *decimal.Decimal `json:"currencyExchangeRate"`
	CommissionPercentage *decimal.Decimal `json:"commissionPercentage" binding:"omitempty,dgte0"`
	Commission           *decimal.Decimal `json:"commission" binding:"omitempty,dgte0"`
}

// ConversionResponse returns the derived amounts.
type ConversionResponse struct {
	Currency             string          `json:"currency"`
	Precision            int             `json:"precision"`
	CurrencyExchangeRate decimal.Decimal `json:"currencyExchangeRate"`
	ConvertedAmount      decimal.Decimal `json:"convertedAmount"`
	CommissionAmount     decimal.Decimal `json:"commissionAmount"`
}
