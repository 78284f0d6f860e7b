package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
)

// FindRequisitionByID implements portsrepo.RequisitionReader.
func (s *Store) FindRequisitionByID(_ context.Context, requisitionID string) (*domain.Requisition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requisitions[requisitionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("requisition " + requisitionID)
	}
	c := cloneRequisition(r, true)
	return &c, nil
}

// FindRequisitionsByIDs implements portsrepo.RequisitionReader.
func (s *Store) FindRequisitionsByIDs(_ context.Context, requisitionIDs []string) (map[string]domain.Requisition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.Requisition, len(requisitionIDs))
	for _, id := range requisitionIDs {
		if r, ok := s.requisitions[id]; ok {
			out[id] = cloneRequisition(r, false)
		}
	}
	return out, nil
}

// ListRequisitions implements portsrepo.RequisitionReader.
func (s *Store) ListRequisitions(_ context.Context, filter domain.RequisitionFilter) ([]domain.Requisition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Requisition, 0)
	for _, r := range s.requisitions {
		if filter.Stage != nil && r.State.Stage() != *filter.Stage {
			continue
		}
		if filter.Status != nil && r.State.Status() != *filter.Status {
			continue
		}
		if filter.InitiatorID != nil && r.InitiatorID != *filter.InitiatorID {
			continue
		}
		if filter.BatchID != nil && (r.BatchID == nil || *r.BatchID != *filter.BatchID) {
			continue
		}
		if filter.UpdatedBefore != nil && !r.LastUpdatedAt.Before(*filter.UpdatedBefore) {
			continue
		}
		out = append(out, cloneRequisition(r, false))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].RequisitionID > out[j].RequisitionID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// ListActions implements portsrepo.RequisitionReader.
func (s *Store) ListActions(_ context.Context, requisitionID string) ([]domain.ActionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ActionRecord{}, s.actions[requisitionID]...), nil
}

// SaveRequisition implements portsrepo.RequisitionWriter.
func (s *Store) SaveRequisition(_ context.Context, requisition domain.Requisition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.requisitions[requisition.RequisitionID]; exists {
		return fmt.Errorf("requisition %s: %w", requisition.RequisitionID, apperrors.ErrDuplicate)
	}
	c := cloneRequisition(&requisition, true)
	s.requisitions[requisition.RequisitionID] = &c
	return nil
}

// UpdateRequisitionContent implements portsrepo.RequisitionWriter.
func (s *Store) UpdateRequisitionContent(_ context.Context, requisition domain.Requisition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.requisitions[requisition.RequisitionID]
	if !ok {
		return apperrors.NewNotFoundError("requisition " + requisition.RequisitionID)
	}
	if current.State.Stage() != domain.StageInitiator || current.IsCompiled() {
		return apperrors.NewInvalidTransitionError(fmt.Sprintf("requisition is %s and can no longer be edited", current.State))
	}
	c := cloneRequisition(&requisition, true)
	current.Object = c.Object
	current.Category = c.Category
	current.Currency = c.Currency
	current.Amount = c.Amount
	current.Items = c.Items
	current.LastUpdatedAt = c.LastUpdatedAt
	current.LastUpdatedBy = c.LastUpdatedBy
	return nil
}

// checkExpected verifies the stored state still matches cmd.Expected. Caller holds mu.
func (s *Store) checkExpected(cmd domain.TransitionCommand) (*domain.Requisition, error) {
	r, ok := s.requisitions[cmd.RequisitionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("requisition " + cmd.RequisitionID)
	}
	if r.State != cmd.Expected {
		return nil, apperrors.NewInvalidTransitionError(
			fmt.Sprintf("requisition %s is %s, expected %s", cmd.RequisitionID, r.State, cmd.Expected))
	}
	return r, nil
}

// applyChecked writes a transition already validated by checkExpected. Caller holds mu.
func (s *Store) applyChecked(r *domain.Requisition, cmd domain.TransitionCommand) {
	r.State = cmd.Next
	r.LastUpdatedAt = cmd.UpdatedAt
	r.LastUpdatedBy = cmd.Record.UserID
	if cmd.PaymentMode != nil {
		r.PaymentMode = cloneMode(cmd.PaymentMode)
	}
	s.actions[r.RequisitionID] = append(s.actions[r.RequisitionID], cmd.Record)
}

// ApplyTransition implements portsrepo.RequisitionWriter.
func (s *Store) ApplyTransition(_ context.Context, cmd domain.TransitionCommand) (*domain.Requisition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.checkExpected(cmd)
	if err != nil {
		return nil, err
	}
	if cmd.Debit != nil {
		if err := s.checkCovered([]domain.Movement{*cmd.Debit}); err != nil {
			return nil, err
		}
		s.applyMovementLocked(*cmd.Debit)
	}
	s.applyChecked(r, cmd)
	c := cloneRequisition(r, true)
	return &c, nil
}

// ApplyBatchPayment implements portsrepo.RequisitionWriter.
func (s *Store) ApplyBatchPayment(_ context.Context, plan domain.BatchPaymentPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	targets := make([]*domain.Requisition, len(plan.Transitions))
	for i, cmd := range plan.Transitions {
		r, err := s.checkExpected(cmd)
		if err != nil {
			return err
		}
		targets[i] = r
	}
	if err := s.checkCovered(plan.Debits); err != nil {
		return err
	}

	for _, d := range plan.Debits {
		s.applyMovementLocked(d)
	}
	for i, cmd := range plan.Transitions {
		s.applyChecked(targets[i], cmd)
	}
	return nil
}
