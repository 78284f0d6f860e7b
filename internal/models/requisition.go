package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Requisition is a row of the requisitions table. Stage and status are stored
// as plain columns and only become a domain.State once validated.
type Requisition struct {
	RequisitionID string          `db:"requisition_id"`
	Number        string          `db:"number"`
	Object        string          `db:"object"`
	Category      string          `db:"category"`
	Currency      string          `db:"currency"`
	Amount        decimal.Decimal `db:"amount"`
	Stage         string          `db:"stage"`
	Status        string          `db:"status"`
	InitiatorID   string          `db:"initiator_id"`
	Department    string          `db:"department"`
	BatchID       *string         `db:"batch_id"`
	PaymentMode   *string         `db:"payment_mode"`
	RespondsTo    *string         `db:"responds_to"`
	AuditFields
}

// RequisitionItem is a row of the requisition_items table.
type RequisitionItem struct {
	ItemID        string          `db:"item_id"`
	RequisitionID string          `db:"requisition_id"`
	Position      int             `db:"position"`
	Description   string          `db:"description"`
	Quantity      decimal.Decimal `db:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	LineTotal     decimal.Decimal `db:"line_total"`
	Site          *string         `db:"site"`
}

// ActionRecord is a row of the append-only requisition_actions table.
type ActionRecord struct {
	ActionID      string    `db:"action_id"`
	RequisitionID string    `db:"requisition_id"`
	UserID        string    `db:"user_id"`
	Role          string    `db:"role"`
	Action        string    `db:"action"`
	Comment       string    `db:"comment"`
	StageBefore   string    `db:"stage_before"`
	StageAfter    string    `db:"stage_after"`
	StatusBefore  string    `db:"status_before"`
	StatusAfter   string    `db:"status_after"`
	CreatedAt     time.Time `db:"created_at"`
}
