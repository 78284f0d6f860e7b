package dto

import (
	"time"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetCheckRequest is the body of POST /budgets/check. Description is the spend category.
type BudgetCheckRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"montant"`
	Month       string          `json:"mois" binding:"required,month"`
	Currency    string          `json:"devise" binding:"omitempty,currency"`
}

// BudgetEnvelopeRequest is the body of PUT /budgets/envelopes.
type BudgetEnvelopeRequest struct {
	Category string          `json:"rubrique" binding:"required"`
	Month    string          `json:"mois" binding:"required,month"`
	Total    decimal.Decimal `json:"total"`
	Consumed decimal.Decimal `json:"consomme"`
}

// BudgetEnvelopeResponse is one envelope.
type BudgetEnvelopeResponse struct {
	Category  string          `json:"rubrique"`
	Month     string          `json:"mois"`
	Total     decimal.Decimal `json:"total"`
	Consumed  decimal.Decimal `json:"consomme"`
	Remaining decimal.Decimal `json:"reste"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToBudgetEnvelopeResponses converts envelopes.
func ToBudgetEnvelopeResponses(es []domain.BudgetEnvelope) []BudgetEnvelopeResponse {
	out := make([]BudgetEnvelopeResponse, len(es))
	for i, e := range es {
		out[i] = BudgetEnvelopeResponse{
			Category:  e.Category,
			Month:     e.Month,
			Total:     e.Total,
			Consumed:  e.Consumed,
			Remaining: e.Remaining(),
			UpdatedAt: e.LastUpdatedAt,
		}
	}
	return out
}
