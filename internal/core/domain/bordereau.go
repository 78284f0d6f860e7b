package domain

import "time"

// BatchStatus is the lifecycle of a batch document.
type BatchStatus string

const (
	BatchCreated BatchStatus = "created"
	BatchAligned BatchStatus = "aligned"
)

// BatchDocument (bordereau) groups approved requisitions for downstream signature.
type BatchDocument struct {
	BatchID        string       `json:"batchID"`
	Number         string       `json:"number"` // BRD-YYYY-NNNN
	Status         BatchStatus  `json:"status"`
	PaymentMode    *PaymentMode `json:"paymentMode,omitempty"`
	CreatedBy      string       `json:"createdBy"`
	CreatedAt      time.Time    `json:"createdAt"`
	AlignedAt      *time.Time   `json:"alignedAt,omitempty"`
	RequisitionIDs []string     `json:"requisitionIDs"`
}
