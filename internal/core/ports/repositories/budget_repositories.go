package repositories

import (
	"context"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
)

// BudgetRepositoryFacade gives access to monthly budget envelopes.
type BudgetRepositoryFacade interface {
	// FindEnvelope returns the envelope of category for month, or apperrors.ErrNotFound.
	FindEnvelope(ctx context.Context, category string, month string) (*domain.BudgetEnvelope, error)

	// ListEnvelopes returns every envelope of month ordered by category.
	ListEnvelopes(ctx context.Context, month string) ([]domain.BudgetEnvelope, error)

	// UpsertEnvelope creates or replaces an envelope.
	UpsertEnvelope(ctx context.Context, envelope domain.BudgetEnvelope) error
}
