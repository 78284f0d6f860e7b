package dto

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FundResponse is one currency fund.
type FundResponse struct {
	Currency  string          `json:"devise"`
	Available decimal.Decimal `json:"montant_disponible"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MovementResponse is one ledger movement.
type MovementResponse struct {
	MovementID    string              `json:"id"`
	Type          domain.MovementType `json:"type_mouvement"`
	Amount        decimal.Decimal     `json:"montant"`
	Currency      string              `json:"devise"`
	Description   string              `json:"description"`
	RequisitionID *string             `json:"requisition_id,omitempty"`
	CreatedBy     string              `json:"created_by"`
	CreatedAt     time.Time           `json:"created_at"`
}

// ListMovementsParams holds the query of GET /payments/mouvements.
type ListMovementsParams struct {
	Currency  string  `form:"devise" binding:"omitempty,currency"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken *string `form:"nextToken"`
}

// NextTokenHeader carries the cursor of the next movements page.
const NextTokenHeader = "X-Next-Token"

// CreditRequest is the body of POST /payments/ravitaillement.
type CreditRequest struct {
	Currency    string          `json:"devise" binding:"required,currency"`
	Amount      decimal.Decimal `json:"montant"`
	Description string          `json:"description"`
}

// BatchPayRequest is the body of POST /requisitions/batch-pay.
type BatchPayRequest struct {
	RequisitionIDs []string `json:"requisitionIds" binding:"required,min=1,dive,required"`
}

// BatchPayResponse summarises a committed batch payment.
type BatchPayResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details"`
}

// ToFundResponse converts a domain.CurrencyFund.
func ToFundResponse(f *domain.CurrencyFund) FundResponse {
	return FundResponse{Currency: f.Currency, Available: f.Balance, UpdatedAt: f.LastUpdatedAt}
}

// ToFundResponses converts a slice of funds.
func ToFundResponses(funds []domain.CurrencyFund) []FundResponse {
	out := make([]FundResponse, len(funds))
	for i := range funds {
		out[i] = ToFundResponse(&funds[i])
	}
	return out
}

// ToMovementResponses converts a slice of movements.
func ToMovementResponses(ms []domain.Movement) []MovementResponse {
	out := make([]MovementResponse, len(ms))
	for i, m := range ms {
		out[i] = MovementResponse{
			MovementID:    m.MovementID,
			Type:          m.Type,
			Amount:        m.Amount,
			Currency:      m.Currency,
			Description:   m.Description,
			RequisitionID: m.RequisitionID,
			CreatedBy:     m.CreatedBy,
			CreatedAt:     m.CreatedAt,
		}
	}
	return out
}

// ToBatchPayResponse renders a batch summary with one detail line per currency.
func ToBatchPayResponse(s *domain.BatchPaymentSummary) BatchPayResponse {
	currencies := make([]string, 0, len(s.Totals))
	for c := range s.Totals {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	details := make([]string, len(currencies))
	for i, c := range currencies {
		details[i] = fmt.Sprintf("%s: %s", c, s.Totals[c].StringFixed(2))
	}
	return BatchPayResponse{
		Message: fmt.Sprintf("%d requisition(s) paid", s.Count),
		Details: details,
	}
}
