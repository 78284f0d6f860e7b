package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
	"github.com/SscSPs/requisition_portal/internal/dto"
)

func TestBordereau_CompileAndAlign(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()
	a := p.awaitingPayment(t, "USD", "10")
	b := p.awaitingPayment(t, "CDF", "5000")

	batch, err := p.svc.Bordereau.Compile(ctx, []string{a.RequisitionID, b.RequisitionID}, accountant)
	require.NoError(t, err)
	assert.Regexp(t, `^BRD-\d{4}-0001$`, batch.Number)
	assert.Equal(t, domain.BatchCreated, batch.Status)
	assert.ElementsMatch(t, []string{a.RequisitionID, b.RequisitionID}, batch.RequisitionIDs)

	linked, err := p.store.FindRequisitionByID(ctx, a.RequisitionID)
	require.NoError(t, err)
	require.True(t, linked.IsCompiled())
	assert.Equal(t, batch.BatchID, *linked.BatchID)

	_, err = p.svc.Bordereau.Compile(ctx, []string{a.RequisitionID}, accountant)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	bank := domain.PaymentBank
	aligned, err := p.svc.Bordereau.Align(ctx, batch.BatchID, &bank, accountant)
	require.NoError(t, err)
	assert.Equal(t, domain.BatchAligned, aligned.Status)
	require.NotNil(t, aligned.AlignedAt)
	require.NotNil(t, aligned.PaymentMode)
	assert.Equal(t, domain.PaymentBank, *aligned.PaymentMode)

	_, err = p.svc.Bordereau.Align(ctx, batch.BatchID, nil, accountant)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	got, err := p.svc.Bordereau.GetBatch(ctx, batch.BatchID)
	require.NoError(t, err)
	assert.Equal(t, batch.Number, got.Number)

	all, err := p.svc.Bordereau.ListBatches(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBordereau_CompiledRequisitionCanStillBePaid(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()
	p.credit(t, "USD", "10")
	r := p.awaitingPayment(t, "USD", "10")
	_, err := p.svc.Bordereau.Compile(ctx, []string{r.RequisitionID}, accountant)
	require.NoError(t, err)

	res, err := p.svc.Requisition.SubmitAction(ctx, r.RequisitionID, dto.ActionRequest{Action: "pay"}, accountant)

	require.NoError(t, err)
	assert.Equal(t, domain.Paid(), res.Requisition.State)
}

func TestBordereau_Refusals(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()
	early := p.create(t, "USD", "10")

	_, err := p.svc.Bordereau.Compile(ctx, []string{early.RequisitionID}, analyst)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = p.svc.Bordereau.Compile(ctx, []string{early.RequisitionID}, accountant)
	var ineligible *apperrors.IneligibleError
	require.ErrorAs(t, err, &ineligible)
	assert.Contains(t, ineligible.Reasons[early.RequisitionID], "not awaiting payment")

	_, err = p.svc.Bordereau.Align(ctx, "missing", nil, accountant)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = p.svc.Bordereau.GetBatch(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
