package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetEnvelope is the monthly allotment of a spend category, in the reference currency.
type BudgetEnvelope struct {
	Category      string          `json:"category"`
	Month         string          `json:"month"` // YYYY-MM
	Total         decimal.Decimal `json:"total"`
	Consumed      decimal.Decimal `json:"consumed"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// Remaining is what is left to spend in the envelope.
func (e BudgetEnvelope) Remaining() decimal.Decimal {
	return e.Total.Sub(e.Consumed)
}

// BudgetCheckDetails is shown to users when an amount is refused.
type BudgetCheckDetails struct {
	BudgetTotal decimal.Decimal `json:"budgetTotal"`
	Consumed    decimal.Decimal `json:"consumed"`
	Remaining   decimal.Decimal `json:"remaining"`
}

// BudgetCheckResult is the advisory answer of the budget checker.
type BudgetCheckResult struct {
	Allowed          bool                `json:"allowed"`
	Reason           string              `json:"reason,omitempty"`
	NormalizedAmount decimal.Decimal     `json:"normalizedAmount"`
	Details          *BudgetCheckDetails `json:"details,omitempty"`
}

const (
	BudgetReasonCategoryNotFound = "category not found"
	BudgetReasonExceeded         = "amount exceeds remaining monthly budget"
)

// MonthOf formats t as the YYYY-MM key used by budget envelopes.
func MonthOf(t time.Time) string {
	return t.Format("2006-01")
}
