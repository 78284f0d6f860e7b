package mapping

import (
	"fmt"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
	"github.com/SscSPs/requisition_portal/internal/models"
)

// ToModelRequisition converts a domain Requisition to a model Requisition (items excluded).
func ToModelRequisition(d domain.Requisition) models.Requisition {
	m := models.Requisition{
		RequisitionID: d.RequisitionID,
		Number:        d.Number,
		Object:        d.Object,
		Category:      d.Category,
		Currency:      d.Currency,
		Amount:        d.Amount,
		Stage:         string(d.State.Stage()),
		Status:        string(d.State.Status()),
		InitiatorID:   d.InitiatorID,
		Department:    d.Department,
		BatchID:       d.BatchID,
		RespondsTo:    d.RespondsTo,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.PaymentMode != nil {
		mode := string(*d.PaymentMode)
		m.PaymentMode = &mode
	}
	return m
}

// ToDomainRequisition converts a model Requisition to a domain Requisition.
// It fails when the stored stage/status pair is not a valid state.
func ToDomainRequisition(m models.Requisition) (domain.Requisition, error) {
	state, err := domain.ParseState(domain.Stage(m.Stage), domain.Status(m.Status))
	if err != nil {
		return domain.Requisition{}, fmt.Errorf("requisition %s: %w", m.RequisitionID, err)
	}
	d := domain.Requisition{
		RequisitionID: m.RequisitionID,
		Number:        m.Number,
		Object:        m.Object,
		Category:      m.Category,
		Currency:      m.Currency,
		Amount:        m.Amount,
		State:         state,
		InitiatorID:   m.InitiatorID,
		Department:    m.Department,
		BatchID:       m.BatchID,
		RespondsTo:    m.RespondsTo,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.PaymentMode != nil {
		mode := domain.PaymentMode(*m.PaymentMode)
		d.PaymentMode = &mode
	}
	return d, nil
}

// ToModelRequisitionItem converts a domain item, keeping its position in the requisition.
func ToModelRequisitionItem(d domain.RequisitionItem, position int) models.RequisitionItem {
	return models.RequisitionItem{
		ItemID:        d.ItemID,
		RequisitionID: d.RequisitionID,
		Position:      position,
		Description:   d.Description,
		Quantity:      d.Quantity,
		UnitPrice:     d.UnitPrice,
		LineTotal:     d.LineTotal,
		Site:          d.Site,
	}
}

// ToDomainRequisitionItem converts a model item.
func ToDomainRequisitionItem(m models.RequisitionItem) domain.RequisitionItem {
	return domain.RequisitionItem{
		ItemID:        m.ItemID,
		RequisitionID: m.RequisitionID,
		Description:   m.Description,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		LineTotal:     m.LineTotal,
		Site:          m.Site,
	}
}

// ToModelActionRecord converts a domain ActionRecord.
func ToModelActionRecord(d domain.ActionRecord) models.ActionRecord {
	return models.ActionRecord{
		ActionID:      d.ActionID,
		RequisitionID: d.RequisitionID,
		UserID:        d.UserID,
		Role:          string(d.Role),
		Action:        string(d.Action),
		Comment:       d.Comment,
		StageBefore:   string(d.StageBefore),
		StageAfter:    string(d.StageAfter),
		StatusBefore:  string(d.StatusBefore),
		StatusAfter:   string(d.StatusAfter),
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainActionRecord converts a model ActionRecord.
func ToDomainActionRecord(m models.ActionRecord) domain.ActionRecord {
	return domain.ActionRecord{
		ActionID:      m.ActionID,
		RequisitionID: m.RequisitionID,
		UserID:        m.UserID,
		Role:          domain.Role(m.Role),
		Action:        domain.ActionKind(m.Action),
		Comment:       m.Comment,
		StageBefore:   domain.Stage(m.StageBefore),
		StageAfter:    domain.Stage(m.StageAfter),
		StatusBefore:  domain.Status(m.StatusBefore),
		StatusAfter:   domain.Status(m.StatusAfter),
		CreatedAt:     m.CreatedAt,
	}
}
