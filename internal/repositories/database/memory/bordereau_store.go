package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
)

// SaveBatch implements portsrepo.BordereauRepositoryFacade.
func (s *Store) SaveBatch(_ context.Context, batch domain.BatchDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ineligible := &apperrors.IneligibleError{}
	for _, id := range batch.RequisitionIDs {
		r, ok := s.requisitions[id]
		switch {
		case !ok:
			ineligible.Add(id, "not found")
		case r.IsCompiled():
			ineligible.Add(id, "already linked to batch "+*r.BatchID)
		case r.State != domain.AwaitingPayment():
			ineligible.Add(id, fmt.Sprintf("not awaiting payment (%s)", r.State))
		}
	}
	if !ineligible.Empty() {
		return ineligible
	}

	c := cloneBatch(&batch)
	s.batches[batch.BatchID] = &c
	for _, id := range batch.RequisitionIDs {
		batchID := batch.BatchID
		s.requisitions[id].BatchID = &batchID
	}
	return nil
}

// FindBatchByID implements portsrepo.BordereauRepositoryFacade.
func (s *Store) FindBatchByID(_ context.Context, batchID string) (*domain.BatchDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.batches[batchID]
	if !ok {
		return nil, apperrors.NewNotFoundError("batch " + batchID)
	}
	c := cloneBatch(b)
	return &c, nil
}

// ListBatches implements portsrepo.BordereauRepositoryFacade.
func (s *Store) ListBatches(_ context.Context) ([]domain.BatchDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.BatchDocument, 0, len(s.batches))
	for _, b := range s.batches {
		out = append(out, cloneBatch(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return out, nil
}

// AlignBatch implements portsrepo.BordereauRepositoryFacade.
func (s *Store) AlignBatch(_ context.Context, batchID string, mode *domain.PaymentMode, alignedAt time.Time) (*domain.BatchDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.batches[batchID]
	if !ok {
		return nil, apperrors.NewNotFoundError("batch " + batchID)
	}
	if b.Status != domain.BatchCreated {
		return nil, apperrors.NewInvalidTransitionError(fmt.Sprintf("batch %s is already %s", b.Number, b.Status))
	}
	b.Status = domain.BatchAligned
	at := alignedAt
	b.AlignedAt = &at
	if mode != nil {
		b.PaymentMode = cloneMode(mode)
		for _, id := range b.RequisitionIDs {
			if r, ok := s.requisitions[id]; ok {
				r.PaymentMode = cloneMode(mode)
			}
		}
	}
	c := cloneBatch(b)
	return &c, nil
}

// NextValue implements portsrepo.SequenceRepository.
func (s *Store) NextValue(_ context.Context, name string, year int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := sequenceKey{name, year}
	s.sequences[key]++
	return s.sequences[key], nil
}
