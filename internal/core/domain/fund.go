package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType is the direction of a ledger movement.
type MovementType string

const (
	MovementIn  MovementType = "entree" // credit / ravitaillement
	MovementOut MovementType = "sortie" // debit / payout
)

// CurrencyFund is the available cash balance of one currency.
type CurrencyFund struct {
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
	Version       int64           `json:"version"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// Movement is an immutable credit or debit against a CurrencyFund.
type Movement struct {
	MovementID    string          `json:"movementID"`
	Type          MovementType    `json:"type"`
	Currency      string          `json:"currency"`
	Amount        decimal.Decimal `json:"amount"` // always positive, sign given by Type
	Description   string          `json:"description"`
	RequisitionID *string         `json:"requisitionID,omitempty"`
	CreatedBy     string          `json:"createdBy"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Signed returns the movement amount with the sign of its direction.
func (m Movement) Signed() decimal.Decimal {
	if m.Type == MovementOut {
		return m.Amount.Neg()
	}
	return m.Amount
}

// Reconciliation compares a fund balance with the sum of its movements.
type Reconciliation struct {
	Currency     string          `json:"currency"`
	Balance      decimal.Decimal `json:"balance"`
	TotalIn      decimal.Decimal `json:"totalIn"`
	TotalOut     decimal.Decimal `json:"totalOut"`
	MovementsNet decimal.Decimal `json:"movementsNet"`
	Consistent   bool            `json:"consistent"`
}

// BatchPaymentPlan is the compute phase of a batch payment: one debit per currency
// and one transition per requisition, applied all together or not at all.
type BatchPaymentPlan struct {
	Debits      []Movement
	Transitions []TransitionCommand
}

// BatchPaymentSummary is returned once a batch payment committed.
type BatchPaymentSummary struct {
	Count  int                        `json:"count"`
	Totals map[string]decimal.Decimal `json:"totals"`
}
