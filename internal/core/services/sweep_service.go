package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/requisition_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/requisition_portal/internal/core/ports/services"
	"github.com/SscSPs/requisition_portal/internal/core/workflow"
	"github.com/SscSPs/requisition_portal/internal/platform/metrics"
)

const (
	sweepComment   = "auto-advanced after stage timeout"
	sweepBatchSize = 200
)

// sweepService advances requisitions idle at a review stage for longer than the timeout.
type sweepService struct {
	BaseService
	reqRepo portsrepo.RequisitionRepositoryFacade
	policy  *workflow.Policy
	stages  []domain.Stage
	timeout time.Duration
}

// NewSweepService creates the stage sweep. Stages that are not review stages are ignored,
// so the payment stage is never advanced automatically. A zero timeout disables the sweep.
func NewSweepService(reqRepo portsrepo.RequisitionRepositoryFacade, policy *workflow.Policy, stages []string, timeout time.Duration) portssvc.SweepSvc {
	if policy == nil {
		policy = workflow.DefaultPolicy()
	}
	var review []domain.Stage
	for _, name := range stages {
		stage, err := domain.ParseStage(name)
		if err != nil || !domain.IsReviewStage(stage) {
			slog.Warn("Ignoring sweep stage", slog.String("stage", name))
			continue
		}
		review = append(review, stage)
	}
	return &sweepService{
		BaseService: newBaseService(),
		reqRepo:     reqRepo,
		policy:      policy,
		stages:      review,
		timeout:     timeout,
	}
}

var _ portssvc.SweepSvc = (*sweepService)(nil)

// Run implements portssvc.SweepSvc. Each candidate goes through the same
// conditional update as a user action, so overlapping runs never advance a
// requisition twice.
func (s *sweepService) Run(ctx context.Context) (int, error) {
	if s.timeout <= 0 || len(s.stages) == 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.timeout)
	advanced := 0

	for _, stage := range s.stages {
		candidates, err := s.reqRepo.ListRequisitions(ctx, domain.RequisitionFilter{
			Stage:         &stage,
			UpdatedBefore: &cutoff,
			Limit:         sweepBatchSize,
		})
		if err != nil {
			s.LogError(ctx, err, "Sweep failed to list requisitions", slog.String("stage", string(stage)))
			return advanced, err
		}

		for i := range candidates {
			r := &candidates[i]
			edge, err := s.policy.Decide(r.State, domain.SystemActor, domain.ActionApprove)
			if err != nil {
				continue
			}
			cmd := newTransitionCommand(r, edge, domain.SystemActor, domain.ActionApprove, sweepComment, nil, s.now())
			if _, err := s.reqRepo.ApplyTransition(ctx, cmd); err != nil {
				if errors.Is(err, apperrors.ErrInvalidTransition) {
					s.LogDebug(ctx, "Sweep skipped requisition that moved meanwhile", slog.String("requisition_id", r.RequisitionID))
					continue
				}
				s.LogError(ctx, err, "Sweep failed to advance requisition", slog.String("requisition_id", r.RequisitionID))
				continue
			}
			advanced++
			metrics.SweepAdvancedTotal.Inc()
			s.LogInfo(ctx, "Sweep advanced requisition",
				slog.String("requisition_id", r.RequisitionID),
				slog.String("from", cmd.Expected.String()),
				slog.String("to", cmd.Next.String()))
		}
	}
	return advanced, nil
}
