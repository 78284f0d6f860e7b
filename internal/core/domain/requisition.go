package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMode is how a requisition is paid out.
type PaymentMode string

const (
	PaymentCash PaymentMode = "cash"
	PaymentBank PaymentMode = "bank"
)

// Valid reports whether m is a known payment mode.
func (m PaymentMode) Valid() bool {
	return m == PaymentCash || m == PaymentBank
}

// Requisition is a spending request moving through the approval chain.
// Its amount is expressed in exactly one currency.
type Requisition struct {
	RequisitionID string            `json:"requisitionID"`
	Number        string            `json:"number"` // REQ-YYYY-NNNN
	Object        string            `json:"object"`
	Category      string            `json:"category"` // spend category checked against budget envelopes
	Currency      string            `json:"currency"`
	Amount        decimal.Decimal   `json:"amount"`
	State         State             `json:"-"`
	InitiatorID   string            `json:"initiatorID"`
	Department    string            `json:"department"`
	BatchID       *string           `json:"batchID,omitempty"`
	PaymentMode   *PaymentMode      `json:"paymentMode,omitempty"`
	RespondsTo    *string           `json:"respondsTo,omitempty"`
	Items         []RequisitionItem `json:"items,omitempty"`
	AuditFields
}

// IsCompiled reports whether the requisition belongs to a batch document.
func (r *Requisition) IsCompiled() bool {
	return r.BatchID != nil && *r.BatchID != ""
}

// RequisitionItem is a line of a requisition.
type RequisitionItem struct {
	ItemID        string          `json:"itemID"`
	RequisitionID string          `json:"requisitionID"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	LineTotal     decimal.Decimal `json:"lineTotal"`
	Site          *string         `json:"site,omitempty"`
}

// ComputeLineTotals recomputes every line total and returns the requisition total.
// Client supplied totals are never trusted.
func ComputeLineTotals(items []RequisitionItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		items[i].LineTotal = items[i].Quantity.Mul(items[i].UnitPrice).Round(2)
		total = total.Add(items[i].LineTotal)
	}
	return total
}

// RequisitionFilter narrows requisition listings.
type RequisitionFilter struct {
	Stage       *Stage
	Status      *Status
	InitiatorID *string
	BatchID     *string
	// UpdatedBefore selects requisitions untouched since the given instant.
	UpdatedBefore *time.Time
	Limit         int
}
