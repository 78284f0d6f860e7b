package dto

import (
	"time"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
)

// CompileRequest is the body of POST /compilations.
type CompileRequest struct {
	RequisitionIDs []string `json:"requisition_ids" binding:"required,min=1,dive,required"`
}

// AlignRequest is the body of POST /compilations/{id}/aligner.
type AlignRequest struct {
	PaymentMode *domain.PaymentMode `json:"mode_paiement,omitempty" binding:"omitempty,oneof=cash bank"`
}

// BatchDocumentResponse is a bordereau.
type BatchDocumentResponse struct {
	BatchID        string              `json:"id"`
	Number         string              `json:"numero"`
	Status         domain.BatchStatus  `json:"statut"`
	PaymentMode    *domain.PaymentMode `json:"mode_paiement,omitempty"`
	CreatedBy      string              `json:"created_by"`
	CreatedAt      time.Time           `json:"created_at"`
	AlignedAt      *time.Time          `json:"aligned_at,omitempty"`
	RequisitionIDs []string            `json:"requisition_ids"`
}

// ToBatchDocumentResponse converts a domain.BatchDocument.
func ToBatchDocumentResponse(b *domain.BatchDocument) BatchDocumentResponse {
	return BatchDocumentResponse{
		BatchID:        b.BatchID,
		Number:         b.Number,
		Status:         b.Status,
		PaymentMode:    b.PaymentMode,
		CreatedBy:      b.CreatedBy,
		CreatedAt:      b.CreatedAt,
		AlignedAt:      b.AlignedAt,
		RequisitionIDs: b.RequisitionIDs,
	}
}

// ToBatchDocumentResponses converts a slice of batch documents.
func ToBatchDocumentResponses(bs []domain.BatchDocument) []BatchDocumentResponse {
	out := make([]BatchDocumentResponse, len(bs))
	for i := range bs {
		out[i] = ToBatchDocumentResponse(&bs[i])
	}
	return out
}
