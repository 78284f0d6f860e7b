package mapping

import (
	"github.com/SscSPs/requisition_portal/internal/core/domain"
	"github.com/SscSPs/requisition_portal/internal/models"
)

// ToDomainCurrencyFund converts a model CurrencyFund.
func ToDomainCurrencyFund(m models.CurrencyFund) domain.CurrencyFund {
	return domain.CurrencyFund{
		Currency:      m.Currency,
		Balance:       m.Balance,
		Version:       m.Version,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

// ToModelMovement converts a domain Movement.
func ToModelMovement(d domain.Movement) models.Movement {
	return models.Movement{
		MovementID:    d.MovementID,
		MovementType:  string(d.Type),
		Currency:      d.Currency,
		Amount:        d.Amount,
		Description:   d.Description,
		RequisitionID: d.RequisitionID,
		CreatedBy:     d.CreatedBy,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainMovement converts a model Movement.
func ToDomainMovement(m models.Movement) domain.Movement {
	return domain.Movement{
		MovementID:    m.MovementID,
		Type:          domain.MovementType(m.MovementType),
		Currency:      m.Currency,
		Amount:        m.Amount,
		Description:   m.Description,
		RequisitionID: m.RequisitionID,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainBatchDocument converts a model Bordereau and its requisition ids.
func ToDomainBatchDocument(m models.Bordereau, requisitionIDs []string) domain.BatchDocument {
	d := domain.BatchDocument{
		BatchID:        m.BatchID,
		Number:         m.Number,
		Status:         domain.BatchStatus(m.Status),
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
		AlignedAt:      m.AlignedAt,
		RequisitionIDs: requisitionIDs,
	}
	if m.PaymentMode != nil {
		mode := domain.PaymentMode(*m.PaymentMode)
		d.PaymentMode = &mode
	}
	return d
}
