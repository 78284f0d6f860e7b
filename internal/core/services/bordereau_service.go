package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/requisition_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/requisition_portal/internal/core/ports/services"
)

const (
	bordereauSequence      = "bordereau"
	bordereauNumberPattern = "BRD-%d-%04d"
)

// bordereauService compiles requisitions awaiting payment into numbered batch documents.
type bordereauService struct {
	BaseService
	batchRepo portsrepo.BordereauRepositoryFacade
	reqRepo   portsrepo.RequisitionReader
	seqRepo   portsrepo.SequenceRepository
}

// NewBordereauService creates the bordereau compiler.
func NewBordereauService(batchRepo portsrepo.BordereauRepositoryFacade, reqRepo portsrepo.RequisitionReader, seqRepo portsrepo.SequenceRepository) portssvc.BordereauSvcFacade {
	return &bordereauService{
		BaseService: newBaseService(),
		batchRepo:   batchRepo,
		reqRepo:     reqRepo,
		seqRepo:     seqRepo,
	}
}

var _ portssvc.BordereauSvcFacade = (*bordereauService)(nil)

func canCompile(actor domain.Actor) bool {
	return actor.Role == domain.RoleAccountant || actor.IsAdmin()
}

// Compile implements portssvc.BordereauSvcFacade.
func (s *bordereauService) Compile(ctx context.Context, requisitionIDs []string, actor domain.Actor) (*domain.BatchDocument, error) {
	if !canCompile(actor) {
		return nil, apperrors.NewPermissionDeniedError(fmt.Sprintf("role %q may not compile batch documents", actor.Role))
	}
	if err := validateIDList(requisitionIDs); err != nil {
		return nil, err
	}

	found, err := s.reqRepo.FindRequisitionsByIDs(ctx, requisitionIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to load requisitions for compilation")
		return nil, fmt.Errorf("failed to load requisitions: %w", err)
	}
	ineligible := &apperrors.IneligibleError{}
	for _, id := range requisitionIDs {
		r, ok := found[id]
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
		s.LogWarn(ctx, "Compilation refused, ineligible requisitions", slog.Int("ineligible", len(ineligible.Order)))
		return nil, ineligible
	}

	now := s.now()
	seq, err := s.seqRepo.NextValue(ctx, bordereauSequence, now.Year())
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate bordereau number")
		return nil, fmt.Errorf("failed to allocate bordereau number: %w", err)
	}

	batch := domain.BatchDocument{
		BatchID:        uuid.NewString(),
		Number:         fmt.Sprintf(bordereauNumberPattern, now.Year(), seq),
		Status:         domain.BatchCreated,
		CreatedBy:      actor.UserID,
		CreatedAt:      now,
		RequisitionIDs: append([]string(nil), requisitionIDs...),
	}
	if err := s.batchRepo.SaveBatch(ctx, batch); err != nil {
		if errors.Is(err, apperrors.ErrInvalidTransition) {
			s.LogWarn(ctx, "Compilation lost a race", slog.String("reason", err.Error()))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save batch document")
		return nil, fmt.Errorf("failed to save batch document: %w", err)
	}

	s.LogInfo(ctx, "Batch document compiled", slog.String("batch_id", batch.BatchID), slog.String("number", batch.Number), slog.Int("requisitions", len(requisitionIDs)))
	return &batch, nil
}

// Align implements portssvc.BordereauSvcFacade.
func (s *bordereauService) Align(ctx context.Context, batchID string, mode *domain.PaymentMode, actor domain.Actor) (*domain.BatchDocument, error) {
	if !canCompile(actor) {
		return nil, apperrors.NewPermissionDeniedError(fmt.Sprintf("role %q may not align batch documents", actor.Role))
	}
	if mode != nil && !mode.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown payment mode %q", *mode))
	}
	batch, err := s.batchRepo.AlignBatch(ctx, batchID, mode, s.now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvalidTransition) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to align batch document", slog.String("batch_id", batchID))
		}
		return nil, fmt.Errorf("failed to align batch %s: %w", batchID, err)
	}
	s.LogInfo(ctx, "Batch document aligned", slog.String("batch_id", batchID))
	return batch, nil
}

// GetBatch implements portssvc.BordereauSvcFacade.
func (s *bordereauService) GetBatch(ctx context.Context, batchID string) (*domain.BatchDocument, error) {
	batch, err := s.batchRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find batch document", slog.String("batch_id", batchID))
		}
		return nil, fmt.Errorf("failed to find batch %s: %w", batchID, err)
	}
	return batch, nil
}

// ListBatches implements portssvc.BordereauSvcFacade.
func (s *bordereauService) ListBatches(ctx context.Context) ([]domain.BatchDocument, error) {
	batches, err := s.batchRepo.ListBatches(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list batch documents")
		return nil, fmt.Errorf("failed to list batch documents: %w", err)
	}
	return batches, nil
}
