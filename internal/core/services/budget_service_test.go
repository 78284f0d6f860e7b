package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
	"github.com/SscSPs/requisition_portal/internal/dto"
	"github.com/SscSPs/requisition_portal/internal/platform/config"
)

func (p *portal) envelope(t *testing.T, category, total, consumed string) string {
	t.Helper()
	month := domain.MonthOf(time.Now().UTC())
	_, err := p.svc.Budget.UpsertEnvelope(context.Background(), dto.BudgetEnvelopeRequest{
		Category: category,
		Month:    month,
		Total:    dec(total),
		Consumed: dec(consumed),
	}, accountant)
	require.NoError(t, err)
	return month
}

func TestBudgetCheck_NormalizesAndCompares(t *testing.T) {
	p := newPortal(t)
	month := p.envelope(t, "fournitures", "100", "60")
	ctx := context.Background()

	res, err := p.svc.Budget.Check(ctx, "fournitures", dec("150000"), "CDF", month)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, domain.BudgetReasonExceeded, res.Reason)
	assert.True(t, res.NormalizedAmount.Equal(dec("60")), res.NormalizedAmount.String())
	require.NotNil(t, res.Details)
	assert.True(t, res.Details.Remaining.Equal(dec("40")))

	// 100000 CDF is 40 and fits exactly
	res, err = p.svc.Budget.Check(ctx, "fournitures", dec("100000"), "CDF", month)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.True(t, res.NormalizedAmount.Equal(dec("40")), res.NormalizedAmount.String())

	res, err = p.svc.Budget.Check(ctx, "fournitures", dec("40"), "", month)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	again, err := p.svc.Budget.Check(ctx, "fournitures", dec("40"), "", month)
	require.NoError(t, err)
	assert.Equal(t, res.Allowed, again.Allowed)
	assert.True(t, res.NormalizedAmount.Equal(again.NormalizedAmount))

	envelopes, err := p.svc.Budget.ListEnvelopes(ctx, month)
	require.NoError(t, err)
	require.Len(t, envelopes, 1)
	assert.True(t, envelopes[0].Consumed.Equal(dec("60")), "checks never consume")
}

func TestBudgetCheck_UnknownCategoryAndBadInput(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()

	res, err := p.svc.Budget.Check(ctx, "voyages", dec("10"), "USD", "2025-03")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, domain.BudgetReasonCategoryNotFound, res.Reason)

	_, err = p.svc.Budget.Check(ctx, "voyages", dec("10"), "USD", "2025-3")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = p.svc.Budget.Check(ctx, "voyages", dec("10"), "EUR", "2025-03")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = p.svc.Budget.UpsertEnvelope(ctx, dto.BudgetEnvelopeRequest{Category: "x", Month: "2025-03", Total: dec("1")}, analyst)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestAnalystApproval_BudgetIsAdvisoryByDefault(t *testing.T) {
	p := newPortal(t)
	p.envelope(t, "fournitures", "50", "45")
	r := p.create(t, "USD", "20")
	p.act(t, r.RequisitionID, initiator, domain.ActionApprove)

	res := p.act(t, r.RequisitionID, analyst, domain.ActionApprove)

	require.NotNil(t, res.Budget)
	assert.False(t, res.Budget.Allowed)
	assert.Equal(t, domain.StageChallenger, res.Requisition.State.Stage())
}

func TestAnalystApproval_EnforcedBudgetBlocks(t *testing.T) {
	p := newPortal(t, func(c *config.Config) { c.BudgetEnforce = true })
	p.envelope(t, "fournitures", "50", "45")
	r := p.create(t, "USD", "20")
	p.act(t, r.RequisitionID, initiator, domain.ActionApprove)

	_, err := p.svc.Requisition.SubmitAction(context.Background(), r.RequisitionID, dto.ActionRequest{Action: "approve"}, analyst)

	assert.ErrorIs(t, err, apperrors.ErrBudgetExceeded)
	assert.Contains(t, apperrors.Details(err), "remaining: 5")
	assert.Equal(t, domain.StageAnalyst, p.state(t, r.RequisitionID).Stage())
}

func TestAnalystApproval_EnforcedBudgetIgnoresMissingCategory(t *testing.T) {
	p := newPortal(t, func(c *config.Config) { c.BudgetEnforce = true })
	r := p.create(t, "USD", "20")
	p.act(t, r.RequisitionID, initiator, domain.ActionApprove)

	res := p.act(t, r.RequisitionID, analyst, domain.ActionApprove)

	require.NotNil(t, res.Budget)
	assert.Equal(t, domain.BudgetReasonCategoryNotFound, res.Budget.Reason)
	assert.Equal(t, domain.StageChallenger, res.Requisition.State.Stage())
}
