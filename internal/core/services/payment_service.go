package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/requisition_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/requisition_portal/internal/core/ports/services"
	"github.com/SscSPs/requisition_portal/internal/core/workflow"
	"github.com/SscSPs/requisition_portal/internal/platform/metrics"
)

// currencyGroup collects the requisitions of one currency in a batch.
type currencyGroup struct {
	total        decimal.Decimal
	requisitions []*domain.Requisition
}

// paymentService pays several requisitions awaiting payment in one all-or-nothing step.
type paymentService struct {
	BaseService
	reqRepo portsrepo.RequisitionRepositoryFacade
	policy  *workflow.Policy
}

// NewPaymentService creates the batch payment coordinator.
func NewPaymentService(reqRepo portsrepo.RequisitionRepositoryFacade, policy *workflow.Policy) portssvc.PaymentSvc {
	if policy == nil {
		policy = workflow.DefaultPolicy()
	}
	return &paymentService{
		BaseService: newBaseService(),
		reqRepo:     reqRepo,
		policy:      policy,
	}
}

var _ portssvc.PaymentSvc = (*paymentService)(nil)

func validateIDList(ids []string) error {
	if len(ids) == 0 {
		return apperrors.NewValidationError("at least one requisition id is required")
	}
	seen := make(map[string]bool, len(ids))
	var details []string
	for _, id := range ids {
		if id == "" {
			details = append(details, "empty requisition id")
			continue
		}
		if seen[id] {
			details = append(details, id+": listed more than once")
		}
		seen[id] = true
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid requisition id list", details...)
	}
	return nil
}

// PayBatch implements portssvc.PaymentSvc. Either every listed requisition is paid
// and every currency fund debited once, or nothing changes.
func (s *paymentService) PayBatch(ctx context.Context, requisitionIDs []string, actor domain.Actor) (*domain.BatchPaymentSummary, error) {
	if actor.Role != domain.RoleAccountant && !actor.IsAdmin() {
		return nil, apperrors.NewPermissionDeniedError(fmt.Sprintf("role %q may not pay requisitions", actor.Role))
	}
	if err := validateIDList(requisitionIDs); err != nil {
		return nil, err
	}

	found, err := s.reqRepo.FindRequisitionsByIDs(ctx, requisitionIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to load requisitions for batch payment")
		return nil, fmt.Errorf("failed to load requisitions: %w", err)
	}

	ineligible := &apperrors.IneligibleError{}
	groups := redblacktree.NewWithStringComparator()
	edges := make(map[string]workflow.Edge, len(requisitionIDs))
	for _, id := range requisitionIDs {
		r, ok := found[id]
		if !ok {
			ineligible.Add(id, "not found")
			continue
		}
		if r.State != domain.AwaitingPayment() {
			ineligible.Add(id, fmt.Sprintf("not awaiting payment (%s)", r.State))
			continue
		}
		edge, err := s.policy.Decide(r.State, actor, domain.ActionPay)
		if err != nil {
			ineligible.Add(id, err.Error())
			continue
		}
		edges[id] = edge

		var group *currencyGroup
		if v, ok := groups.Get(r.Currency); ok {
			group = v.(*currencyGroup)
		} else {
			group = &currencyGroup{total: decimal.Zero}
			groups.Put(r.Currency, group)
		}
		rc := r
		group.total = group.total.Add(rc.Amount)
		group.requisitions = append(group.requisitions, &rc)
	}
	if !ineligible.Empty() {
		metrics.BatchPaymentsTotal.WithLabelValues(metrics.OutcomeRefused).Inc()
		s.LogWarn(ctx, "Batch payment refused, ineligible requisitions", slog.Int("ineligible", len(ineligible.Order)))
		return nil, ineligible
	}

	now := s.now()
	plan := domain.BatchPaymentPlan{}
	summary := &domain.BatchPaymentSummary{Count: len(requisitionIDs), Totals: make(map[string]decimal.Decimal)}

	// tree iteration is ordered by currency code, which is also the lock order of the store
	it := groups.Iterator()
	for it.Next() {
		currency := it.Key().(string)
		group := it.Value().(*currencyGroup)
		plan.Debits = append(plan.Debits, domain.Movement{
			MovementID:  uuid.NewString(),
			Type:        domain.MovementOut,
			Currency:    currency,
			Amount:      group.total,
			Description: fmt.Sprintf("paiement groupé de %d réquisition(s)", len(group.requisitions)),
			CreatedBy:   actor.UserID,
			CreatedAt:   now,
		})
		for _, r := range group.requisitions {
			cmd := newTransitionCommand(r, edges[r.RequisitionID], actor, domain.ActionPay, "paiement groupé", nil, now)
			cmd.Debit = nil
			plan.Transitions = append(plan.Transitions, cmd)
		}
		summary.Totals[currency] = group.total
	}

	if err := s.reqRepo.ApplyBatchPayment(ctx, plan); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) || errors.Is(err, apperrors.ErrInvalidTransition) {
			metrics.BatchPaymentsTotal.WithLabelValues(metrics.OutcomeRefused).Inc()
			s.LogWarn(ctx, "Batch payment refused", slog.String("reason", err.Error()))
			return nil, err
		}
		metrics.BatchPaymentsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		s.LogError(ctx, err, "Failed to apply batch payment")
		return nil, fmt.Errorf("failed to apply batch payment: %w", err)
	}

	metrics.BatchPaymentsTotal.WithLabelValues(metrics.OutcomeApplied).Inc()
	for _, d := range plan.Debits {
		metrics.FundMovementsTotal.WithLabelValues(d.Currency, string(d.Type)).Inc()
	}
	s.LogInfo(ctx, "Batch payment applied", slog.Int("count", summary.Count), slog.Int("currencies", len(plan.Debits)))
	return summary, nil
}
