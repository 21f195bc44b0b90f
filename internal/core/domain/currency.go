package domain

// DefaultPrecision is used when neither the currency master nor ISO 4217 knows better.
const DefaultPrecision = 2

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "PKR")
	Symbol       string `json:"symbol"`       // e.g., "Rs"
	Name         string `json:"name"`         // e.g., "Pakistani Rupee"
	Precision    int    `json:"precision"`    // Number of minor-unit digits
	AuditFields
}
