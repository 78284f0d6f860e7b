package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
)

// FindEnvelope implements portsrepo.BudgetRepositoryFacade.
func (s *Store) FindEnvelope(_ context.Context, category string, month string) (*domain.BudgetEnvelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.envelopes[envelopeKey{category, month}]
	if !ok {
		return nil, apperrors.NewNotFoundError("budget envelope " + category + " " + month)
	}
	return &e, nil
}

// ListEnvelopes implements portsrepo.BudgetRepositoryFacade.
func (s *Store) ListEnvelopes(_ context.Context, month string) ([]domain.BudgetEnvelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.BudgetEnvelope, 0)
	for k, e := range s.envelopes {
		if k.month == month {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

// UpsertEnvelope implements portsrepo.BudgetRepositoryFacade.
func (s *Store) UpsertEnvelope(_ context.Context, envelope domain.BudgetEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envelopes[envelopeKey{envelope.Category, envelope.Month}] = envelope
	return nil
}
