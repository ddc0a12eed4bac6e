package option

import "github.com/shopspring/decimal"

type CreateOptionInput struct {
	ID           string
	Name         string
	Value        float64
	PremiumRate  float64
	Description  string
	TokenAddress string
}

type QuoteInput struct {
	OptionID string
	// CoveragePercent is the share of the option value to insure, 0 < c ≤ 100.
	CoveragePercent float64
	Months          int
}

type QuoteDTO struct {
	OptionID        string          `json:"optionId"`
	Value           decimal.Decimal `json:"value"`
	CoveragePercent decimal.Decimal `json:"coveragePercent"`
	CoverageAmount  decimal.Decimal `json:"coverageAmount"`
	PremiumRate     decimal.Decimal `json:"premiumRate"`
	Months          int             `json:"months"`
	MonthlyPremium  decimal.Decimal `json:"monthlyPremium"`
	TotalPremium    decimal.Decimal `json:"totalPremium"`
}
