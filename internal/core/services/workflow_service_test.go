package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
	"github.com/SscSPs/requisition_portal/internal/dto"
	"github.com/SscSPs/requisition_portal/internal/platform/config"
)

func TestCreateRequisition_ComputesTotalsAndNumber(t *testing.T) {
	p := newPortal(t)
	req := requisitionRequest("usd", "0")
	req.Items = []dto.RequisitionItemRequest{
		{Description: "papier", Quantity: dec("3"), UnitPrice: dec("2.50")},
		{Description: "encre", Quantity: dec("2"), UnitPrice: dec("10")},
	}

	r, err := p.svc.Requisition.CreateRequisition(context.Background(), req, initiator)

	require.NoError(t, err)
	assert.Equal(t, "USD", r.Currency)
	assert.True(t, r.Amount.Equal(dec("27.50")), r.Amount.String())
	assert.Equal(t, domain.Submitted(), r.State)
	assert.Equal(t, "logistique", r.Department)
	assert.Regexp(t, `^REQ-\d{4}-0001$`, r.Number)

	second := p.create(t, "CDF", "1000")
	assert.Regexp(t, `^REQ-\d{4}-0002$`, second.Number)
}

func TestCreateRequisition_Refusals(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()

	_, err := p.svc.Requisition.CreateRequisition(ctx, requisitionRequest("EUR", "10"), initiator)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = p.svc.Requisition.CreateRequisition(ctx, requisitionRequest("USD", "10"), accountant)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	bad := requisitionRequest("USD", "10")
	bad.Items[0].Quantity = dec("0")
	_, err = p.svc.Requisition.CreateRequisition(ctx, bad, initiator)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, apperrors.Details(err), "items[0].quantite: must be positive")
}

func TestWorkflow_HappyPathToPaid(t *testing.T) {
	p := newPortal(t)
	p.credit(t, "USD", "500")

	r := p.awaitingPayment(t, "USD", "120")
	res := p.act(t, r.RequisitionID, accountant, domain.ActionPay)

	assert.Equal(t, domain.Paid(), res.Requisition.State)
	assert.Equal(t, domain.StageDone, res.Record.StageAfter)
	assert.True(t, p.balance(t, "USD").Equal(dec("380")))

	actions, err := p.svc.Requisition.ListActions(context.Background(), r.RequisitionID, admin)
	require.NoError(t, err)
	require.Len(t, actions, 6)
	assert.Equal(t, domain.StageInitiator, actions[0].StageBefore)
	assert.Equal(t, domain.StatusPaid, actions[5].StatusAfter)

	rec, err := p.svc.Fund.Reconcile(context.Background(), "USD")
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	assert.True(t, rec.TotalOut.Equal(dec("120")))
}

func TestWorkflow_PayWithoutFundsLeavesEverythingUntouched(t *testing.T) {
	p := newPortal(t)
	p.credit(t, "USD", "50")
	r := p.awaitingPayment(t, "USD", "120")

	_, err := p.svc.Requisition.SubmitAction(context.Background(), r.RequisitionID, dto.ActionRequest{Action: "pay"}, accountant)

	var shortfall *apperrors.ShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.Equal(t, "70.00", shortfall.Shortfalls[0].Missing)
	assert.Equal(t, domain.AwaitingPayment(), p.state(t, r.RequisitionID))
	assert.True(t, p.balance(t, "USD").Equal(dec("50")))
}

func TestWorkflow_ConcurrentApprovalsAdvanceOnce(t *testing.T) {
	p := newPortal(t)
	r := p.create(t, "USD", "10")
	p.act(t, r.RequisitionID, initiator, domain.ActionApprove)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		failures  []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.svc.Requisition.SubmitAction(context.Background(), r.RequisitionID, dto.ActionRequest{Action: "approve"}, analyst)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			failures = append(failures, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	for _, err := range failures {
		refused := apperrors.Kind(err) == apperrors.KindInvalidTransition || apperrors.Kind(err) == apperrors.KindPermissionDenied
		assert.True(t, refused, err.Error())
	}
	assert.Equal(t, domain.StageChallenger, p.state(t, r.RequisitionID).Stage())

	actions, err := p.store.ListActions(context.Background(), r.RequisitionID)
	require.NoError(t, err)
	assert.Len(t, actions, 2)
}

func TestWorkflow_AnalystMayApproveAtInitiatorStage(t *testing.T) {
	p := newPortal(t)
	r := p.create(t, "USD", "10")

	res := p.act(t, r.RequisitionID, analyst, domain.ActionApprove)

	assert.Equal(t, domain.StageAnalyst, res.Requisition.State.Stage())
}

func TestWorkflow_OtherInitiatorSeesNotFound(t *testing.T) {
	p := newPortal(t)
	r := p.create(t, "USD", "10")
	ctx := context.Background()

	_, err := p.svc.Requisition.SubmitAction(ctx, r.RequisitionID, dto.ActionRequest{Action: "approve"}, colleague)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, domain.Submitted(), p.state(t, r.RequisitionID))

	_, err = p.svc.Requisition.SubmitAction(ctx, r.RequisitionID, dto.ActionRequest{Action: "cancel", Comment: "pas le mien"}, colleague)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = p.svc.Requisition.GetRequisition(ctx, r.RequisitionID, colleague)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// same answer once the requisition left the initiator stage
	p.act(t, r.RequisitionID, initiator, domain.ActionApprove)
	_, err = p.svc.Requisition.SubmitAction(ctx, r.RequisitionID, dto.ActionRequest{Action: "comment", Comment: "?"}, colleague)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	actions, err := p.store.ListActions(ctx, r.RequisitionID)
	require.NoError(t, err)
	assert.Len(t, actions, 1)
}

func TestWorkflow_WrongRoleAndSkippingAreRefused(t *testing.T) {
	p := newPortal(t)
	r := p.create(t, "USD", "10")
	p.act(t, r.RequisitionID, initiator, domain.ActionApprove)

	_, err := p.svc.Requisition.SubmitAction(context.Background(), r.RequisitionID, dto.ActionRequest{Action: "approve"}, gm)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = p.svc.Requisition.SubmitAction(context.Background(), r.RequisitionID, dto.ActionRequest{Action: "pay"}, accountant)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	assert.Equal(t, domain.StageAnalyst, p.state(t, r.RequisitionID).Stage())
}

func TestWorkflow_RejectNeedsComment(t *testing.T) {
	p := newPortal(t)
	r := p.create(t, "USD", "10")
	p.act(t, r.RequisitionID, initiator, domain.ActionApprove)

	_, err := p.svc.Requisition.SubmitAction(context.Background(), r.RequisitionID, dto.ActionRequest{Action: "reject", Comment: "  "}, analyst)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	res, err := p.svc.Requisition.SubmitAction(context.Background(), r.RequisitionID, dto.ActionRequest{Action: "reject", Comment: "hors budget"}, analyst)
	require.NoError(t, err)
	assert.Equal(t, domain.Rejected(), res.Requisition.State)
	assert.Equal(t, "hors budget", res.Record.Comment)

	_, err = p.svc.Requisition.SubmitAction(context.Background(), r.RequisitionID, dto.ActionRequest{Action: "approve"}, analyst)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestWorkflow_CommentKeepsStateAndIsLogged(t *testing.T) {
	p := newPortal(t)
	r := p.create(t, "USD", "10")
	p.act(t, r.RequisitionID, initiator, domain.ActionApprove)

	res := p.act(t, r.RequisitionID, analyst, domain.ActionComment)

	assert.Equal(t, domain.StageAnalyst, res.Requisition.State.Stage())
	assert.Equal(t, domain.StageAnalyst, res.Record.StageBefore)
	assert.Equal(t, domain.StageAnalyst, res.Record.StageAfter)
}

func TestWorkflow_RejectToCorrectThenResubmit(t *testing.T) {
	p := newPortal(t, func(c *config.Config) {
		c.RejectToCorrectStages = []string{"challenger"}
	})
	ctx := context.Background()
	r := p.create(t, "USD", "10")
	p.act(t, r.RequisitionID, initiator, domain.ActionApprove)
	p.act(t, r.RequisitionID, analyst, domain.ActionApprove)

	res, err := p.svc.Requisition.SubmitAction(ctx, r.RequisitionID, dto.ActionRequest{Action: "reject", Comment: "préciser le site"}, challenger)
	require.NoError(t, err)
	assert.Equal(t, domain.ToCorrect(), res.Requisition.State)

	updated, err := p.svc.Requisition.UpdateRequisition(ctx, r.RequisitionID, dto.UpdateRequisitionRequest{
		Object:   "fournitures corrigées",
		Category: "fournitures",
		Currency: "USD",
		Items:    []dto.RequisitionItemRequest{{Description: "lot", Quantity: dec("2"), UnitPrice: dec("7")}},
	}, initiator)
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(dec("14")))

	res = p.act(t, r.RequisitionID, initiator, domain.ActionApprove)
	assert.Equal(t, domain.StageAnalyst, res.Requisition.State.Stage())
	assert.True(t, res.Requisition.Amount.Equal(dec("14")))
}

func TestUpdateRequisition_FrozenOutsideInitiatorStage(t *testing.T) {
	p := newPortal(t)
	r := p.create(t, "USD", "10")
	p.act(t, r.RequisitionID, initiator, domain.ActionApprove)

	_, err := p.svc.Requisition.UpdateRequisition(context.Background(), r.RequisitionID, dto.UpdateRequisitionRequest{
		Object:   "x",
		Category: "fournitures",
		Currency: "USD",
		Items:    []dto.RequisitionItemRequest{{Description: "lot", Quantity: dec("1"), UnitPrice: dec("1")}},
	}, initiator)

	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestWorkflow_CancelByInitiator(t *testing.T) {
	p := newPortal(t)
	r := p.create(t, "USD", "10")

	res, err := p.svc.Requisition.SubmitAction(context.Background(), r.RequisitionID, dto.ActionRequest{Action: "cancel", Comment: "doublon"}, initiator)

	require.NoError(t, err)
	assert.Equal(t, domain.Cancelled(), res.Requisition.State)
}

func TestWorkflow_UnknownActionAndRequisition(t *testing.T) {
	p := newPortal(t)
	r := p.create(t, "USD", "10")

	_, err := p.svc.Requisition.SubmitAction(context.Background(), r.RequisitionID, dto.ActionRequest{Action: "escalate"}, analyst)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = p.svc.Requisition.SubmitAction(context.Background(), "missing", dto.ActionRequest{Action: "approve"}, analyst)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListRequisitions_InitiatorSeesOwnOnly(t *testing.T) {
	p := newPortal(t)
	p.create(t, "USD", "10")
	p.create(t, "CDF", "2000")
	_, err := p.svc.Requisition.CreateRequisition(context.Background(), requisitionRequest("USD", "5"), colleague)
	require.NoError(t, err)

	mine, err := p.svc.Requisition.ListRequisitions(context.Background(), dto.ListRequisitionsParams{}, initiator)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := p.svc.Requisition.ListRequisitions(context.Background(), dto.ListRequisitionsParams{Stage: "initiator"}, analyst)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = p.svc.Requisition.ListRequisitions(context.Background(), dto.ListRequisitionsParams{Stage: "archive"}, analyst)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListRequisitions_DefaultLimitIsOneHundred(t *testing.T) {
	p := newPortal(t)
	for i := 0; i < 101; i++ {
		p.create(t, "USD", "1")
	}

	page, err := p.svc.Requisition.ListRequisitions(context.Background(), dto.ListRequisitionsParams{}, analyst)
	require.NoError(t, err)
	assert.Len(t, page, 100)

	page, err = p.svc.Requisition.ListRequisitions(context.Background(), dto.ListRequisitionsParams{Limit: 5}, analyst)
	require.NoError(t, err)
	assert.Len(t, page, 5)
}
