package dto

import (
	"time"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RequisitionItemRequest is one line of a requisition as sent by the initiator.
// Any line total sent by the client is ignored and recomputed.
type RequisitionItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantite"`
	UnitPrice   decimal.Decimal `json:"prix_unitaire"`
	Site        *string         `json:"site,omitempty"`
}

// CreateRequisitionRequest defines the data needed to create a requisition.
type CreateRequisitionRequest struct {
	Object     string                   `json:"objet" binding:"required"`
	Category   string                   `json:"rubrique" binding:"required"`
	Currency   string                   `json:"devise" binding:"required,currency"`
	Department string                   `json:"service"`
	RespondsTo *string                  `json:"reponse_a,omitempty"`
	Items      []RequisitionItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateRequisitionRequest replaces the content of a requisition still held by its initiator.
type UpdateRequisitionRequest struct {
	Object   string                   `json:"objet" binding:"required"`
	Category string                   `json:"rubrique" binding:"required"`
	Currency string                   `json:"devise" binding:"required,currency"`
	Items    []RequisitionItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ListRequisitionsParams filters requisition listings.
type ListRequisitionsParams struct {
	Stage       string `form:"niveau"`
	Status      string `form:"statut"`
	InitiatorID string `form:"initiateur"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

// RequisitionItemResponse is one requisition line returned to clients.
type RequisitionItemResponse struct {
	ItemID      string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantite"`
	UnitPrice   decimal.Decimal `json:"prix_unitaire"`
	LineTotal   decimal.Decimal `json:"prix_total"`
	Site        *string         `json:"site,omitempty"`
}

// RequisitionResponse defines the data returned for a requisition.
type RequisitionResponse struct {
	RequisitionID string                    `json:"id"`
	Number        string                    `json:"numero"`
	Object        string                    `json:"objet"`
	Category      string                    `json:"rubrique"`
	Currency      string                    `json:"devise"`
	Amount        decimal.Decimal           `json:"montant"`
	Stage         domain.Stage              `json:"niveau"`
	Status        domain.Status             `json:"statut"`
	InitiatorID   string                    `json:"initiateur_id"`
	Department    string                    `json:"service"`
	BatchID       *string                   `json:"bordereau_id,omitempty"`
	PaymentMode   *domain.PaymentMode       `json:"mode_paiement,omitempty"`
	RespondsTo    *string                   `json:"reponse_a,omitempty"`
	Items         []RequisitionItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
	LastUpdatedAt time.Time                 `json:"updated_at"`
}

// ToRequisitionResponse converts a domain.Requisition to RequisitionResponse DTO.
func ToRequisitionResponse(r *domain.Requisition) RequisitionResponse {
	resp := RequisitionResponse{
		RequisitionID: r.RequisitionID,
		Number:        r.Number,
		Object:        r.Object,
		Category:      r.Category,
		Currency:      r.Currency,
		Amount:        r.Amount,
		Stage:         r.State.Stage(),
		Status:        r.State.Status(),
		InitiatorID:   r.InitiatorID,
		Department:    r.Department,
		BatchID:       r.BatchID,
		PaymentMode:   r.PaymentMode,
		RespondsTo:    r.RespondsTo,
		CreatedAt:     r.CreatedAt,
		LastUpdatedAt: r.LastUpdatedAt,
	}
	if len(r.Items) > 0 {
		resp.Items = make([]RequisitionItemResponse, len(r.Items))
		for i, it := range r.Items {
			resp.Items[i] = RequisitionItemResponse{
				ItemID:      it.ItemID,
				Description: it.Description,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				LineTotal:   it.LineTotal,
				Site:        it.Site,
			}
		}
	}
	return resp
}

// ToRequisitionResponses converts a slice of domain requisitions.
func ToRequisitionResponses(rs []domain.Requisition) []RequisitionResponse {
	out := make([]RequisitionResponse, len(rs))
	for i := range rs {
		out[i] = ToRequisitionResponse(&rs[i])
	}
	return out
}
