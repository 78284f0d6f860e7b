package models

import "time"

// Bordereau is a row of the bordereaux table.
type Bordereau struct {
	BatchID     string     `db:"batch_id"`
	Number      string     `db:"number"`
	Status      string     `db:"status"`
	PaymentMode *string    `db:"payment_mode"`
	CreatedBy   string     `db:"created_by"`
	CreatedAt   time.Time  `db:"created_at"`
	AlignedAt   *time.Time `db:"aligned_at"`
}
