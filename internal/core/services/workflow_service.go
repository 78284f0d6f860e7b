package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
	"github.com/SscSPs/requisition_portal/internal/core/workflow"
	"github.com/SscSPs/requisition_portal/internal/dto"
	"github.com/SscSPs/requisition_portal/internal/platform/metrics"
)

// newTransitionCommand turns a decided edge into the command the store applies.
// A paying edge carries the debit of the whole requisition amount.
func newTransitionCommand(r *domain.Requisition, edge workflow.Edge, actor domain.Actor, action domain.ActionKind, comment string, mode *domain.PaymentMode, now time.Time) domain.TransitionCommand {
	next := edge.Next
	if edge.Stay {
		next = r.State
	}
	cmd := domain.TransitionCommand{
		RequisitionID: r.RequisitionID,
		Expected:      r.State,
		Next:          next,
		UpdatedAt:     now,
		Record: domain.ActionRecord{
			ActionID:      uuid.NewString(),
			RequisitionID: r.RequisitionID,
			UserID:        actor.UserID,
			Role:          actor.Role,
			Action:        action,
			Comment:       comment,
			StageBefore:   r.State.Stage(),
			StageAfter:    next.Stage(),
			StatusBefore:  r.State.Status(),
			StatusAfter:   next.Status(),
			CreatedAt:     now,
		},
	}
	if edge.Pays {
		cmd.PaymentMode = mode
		requisitionID := r.RequisitionID
		cmd.Debit = &domain.Movement{
			MovementID:    uuid.NewString(),
			Type:          domain.MovementOut,
			Currency:      r.Currency,
			Amount:        r.Amount,
			Description:   "paiement " + r.Number,
			RequisitionID: &requisitionID,
			CreatedBy:     actor.UserID,
			CreatedAt:     now,
		}
	}
	return cmd
}

// SubmitAction implements portssvc.WorkflowSvc.
func (s *requisitionService) SubmitAction(ctx context.Context, requisitionID string, req dto.ActionRequest, actor domain.Actor) (*domain.TransitionResult, error) {
	action, ok := domain.ParseActionKind(req.Action)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown action %q", req.Action))
	}
	comment := strings.TrimSpace(req.Comment)
	if s.policy.RequiresComment(action) && comment == "" {
		return nil, apperrors.NewValidationError(fmt.Sprintf("a comment is required to %s a requisition", action), "commentaire: required")
	}
	if req.PaymentMode != nil && !req.PaymentMode.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown payment mode %q", *req.PaymentMode))
	}

	requisition, err := s.reqRepo.FindRequisitionByID(ctx, requisitionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load requisition for action", slog.String("requisition_id", requisitionID))
		}
		return nil, fmt.Errorf("failed to find requisition %s: %w", requisitionID, err)
	}

	stageBefore := string(requisition.State.Stage())
	refuse := func(err error) (*domain.TransitionResult, error) {
		metrics.TransitionsTotal.WithLabelValues(string(action), stageBefore, metrics.OutcomeRefused).Inc()
		s.LogWarn(ctx, "Workflow action refused",
			slog.String("requisition_id", requisitionID),
			slog.String("action", string(action)),
			slog.String("state", requisition.State.String()),
			slog.String("reason", err.Error()))
		return nil, err
	}

	// initiators never see requisitions of other initiators
	if actor.Role == domain.RoleInitiator && requisition.InitiatorID != actor.UserID {
		return refuse(apperrors.NewNotFoundError("requisition " + requisitionID))
	}

	edge, err := s.policy.Decide(requisition.State, actor, action)
	if err != nil {
		return refuse(err)
	}

	var budget *domain.BudgetCheckResult
	if requisition.State.Stage() == domain.StageAnalyst && action == domain.ActionApprove && s.budgetSvc != nil {
		budget, err = s.consultBudget(ctx, requisition)
		if err != nil {
			return refuse(err)
		}
	}

	cmd := newTransitionCommand(requisition, edge, actor, action, comment, req.PaymentMode, s.now())
	updated, err := s.reqRepo.ApplyTransition(ctx, cmd)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidTransition) || errors.Is(err, apperrors.ErrInsufficientFunds) {
			return refuse(err)
		}
		metrics.TransitionsTotal.WithLabelValues(string(action), stageBefore, metrics.OutcomeFailed).Inc()
		s.LogError(ctx, err, "Failed to apply transition", slog.String("requisition_id", requisitionID), slog.String("action", string(action)))
		return nil, fmt.Errorf("failed to apply %s on %s: %w", action, requisitionID, err)
	}

	metrics.TransitionsTotal.WithLabelValues(string(action), stageBefore, metrics.OutcomeApplied).Inc()
	s.LogInfo(ctx, "Workflow action applied",
		slog.String("requisition_id", requisitionID),
		slog.String("action", string(action)),
		slog.String("from", cmd.Expected.String()),
		slog.String("to", cmd.Next.String()))

	return &domain.TransitionResult{
		Requisition: updated,
		Record:      cmd.Record,
		Budget:      budget,
	}, nil
}

// consultBudget is advisory: a failing or missing lookup never blocks, and a
// refused amount only blocks when enforcement is on.
func (s *requisitionService) consultBudget(ctx context.Context, r *domain.Requisition) (*domain.BudgetCheckResult, error) {
	result, err := s.budgetSvc.Check(ctx, r.Category, r.Amount, r.Currency, domain.MonthOf(r.CreatedAt))
	if err != nil {
		s.LogWarn(ctx, "Budget consult failed, continuing without it",
			slog.String("requisition_id", r.RequisitionID),
			slog.String("error", err.Error()))
		return nil, nil
	}
	if s.enforceBudget && !result.Allowed && result.Reason != domain.BudgetReasonCategoryNotFound {
		var details []string
		if result.Details != nil {
			details = []string{
				"budgetTotal: " + result.Details.BudgetTotal.String(),
				"consumed: " + result.Details.Consumed.String(),
				"remaining: " + result.Details.Remaining.String(),
			}
		}
		return nil, apperrors.NewBudgetExceededError(result.Reason, details...)
	}
	return result, nil
}
