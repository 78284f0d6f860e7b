package services

import (
	"context"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
)

// BordereauSvcFacade compiles approved requisitions into batch documents.
type BordereauSvcFacade interface {
	Compile(ctx context.Context, requisitionIDs []string, actor domain.Actor) (*domain.BatchDocument, error)
	Align(ctx context.Context, batchID string, mode *domain.PaymentMode, actor domain.Actor) (*domain.BatchDocument, error)
	GetBatch(ctx context.Context, batchID string) (*domain.BatchDocument, error)
	ListBatches(ctx context.Context) ([]domain.BatchDocument, error)
}

// SweepSvc advances requisitions stuck past the stage timeout.
type SweepSvc interface {
	// Run performs one sweep and returns how many requisitions were advanced.
	Run(ctx context.Context) (int, error)
}
