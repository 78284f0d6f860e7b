package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
)

// BordereauRepositoryFacade persists batch documents.
type BordereauRepositoryFacade interface {
	// SaveBatch inserts batch and stamps its id onto every listed requisition, in one
	// transaction. Requisitions already linked to a batch or no longer awaiting
	// payment make the whole call fail with apperrors.ErrInvalidTransition.
	SaveBatch(ctx context.Context, batch domain.BatchDocument) error

	// FindBatchByID retrieves a batch document with its requisition ids.
	FindBatchByID(ctx context.Context, batchID string) (*domain.BatchDocument, error)

	// ListBatches retrieves batch documents newest first.
	ListBatches(ctx context.Context) ([]domain.BatchDocument, error)

	// AlignBatch moves a created batch to aligned and stamps mode, if any, onto its
	// requisitions. Returns apperrors.ErrInvalidTransition when the batch is not created.
	AlignBatch(ctx context.Context, batchID string, mode *domain.PaymentMode, alignedAt time.Time) (*domain.BatchDocument, error)
}

// SequenceRepository hands out gap-free per-year document numbers.
type SequenceRepository interface {
	// NextValue atomically increments and returns the counter name/year.
	NextValue(ctx context.Context, name string, year int) (int64, error)
}
