package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyFund is a row of the currency_funds table.
type CurrencyFund struct {
	Currency      string          `db:"currency"`
	Balance       decimal.Decimal `db:"balance"`
	Version       int64           `db:"version"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
}

// Movement is a row of the append-only fund_movements table.
type Movement struct {
	MovementID    string          `db:"movement_id"`
	MovementType  string          `db:"movement_type"`
	Currency      string          `db:"currency"`
	Amount        decimal.Decimal `db:"amount"`
	Description   string          `db:"description"`
	RequisitionID *string         `db:"requisition_id"`
	CreatedBy     string          `db:"created_by"`
	CreatedAt     time.Time       `db:"created_at"`
}
