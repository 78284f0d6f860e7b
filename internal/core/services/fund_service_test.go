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
)

func TestFund_CreditAndDebit(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()

	fund, err := p.svc.Fund.Credit(ctx, "cdf", dec("5000"), "ravitaillement", accountant)
	require.NoError(t, err)
	assert.Equal(t, "CDF", fund.Currency)
	assert.True(t, fund.Balance.Equal(dec("5000")))

	fund, err = p.svc.Fund.Debit(ctx, "CDF", dec("1200"), nil, "petite caisse", accountant)
	require.NoError(t, err)
	assert.True(t, fund.Balance.Equal(dec("3800")))

	_, err = p.svc.Fund.Debit(ctx, "CDF", dec("3800.01"), nil, "trop", accountant)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.True(t, p.balance(t, "CDF").Equal(dec("3800")))
}

func TestFund_CreditRefusals(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()

	_, err := p.svc.Fund.Credit(ctx, "USD", dec("10"), "", analyst)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = p.svc.Fund.Credit(ctx, "USD", dec("0"), "", accountant)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = p.svc.Fund.Credit(ctx, "USD", dec("-5"), "", accountant)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = p.svc.Fund.Credit(ctx, "EUR", dec("5"), "", accountant)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = p.svc.Fund.Credit(ctx, "USD", dec("0.001"), "", accountant)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = p.svc.Fund.Debit(ctx, "USD", dec("10.125"), nil, "", accountant)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.True(t, p.balance(t, "USD").IsZero())

	// trailing zeros are still cents
	fund, err := p.svc.Fund.Credit(ctx, "USD", dec("1.500"), "", accountant)
	require.NoError(t, err)
	assert.True(t, fund.Balance.Equal(dec("1.5")))
}

func TestFund_ListMovementsPages(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		p.credit(t, "USD", "1")
	}

	first, next, err := p.svc.Fund.ListMovements(ctx, nil, 3, nil)
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.NotNil(t, next)

	rest, next, err := p.svc.Fund.ListMovements(ctx, nil, 3, next)
	require.NoError(t, err)
	assert.Len(t, rest, 2)
	assert.Nil(t, next)

	seen := map[string]bool{}
	for _, m := range append(first, rest...) {
		assert.False(t, seen[m.MovementID], "movement listed twice")
		seen[m.MovementID] = true
	}
}

func TestFund_ReconcileAndListFunds(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()
	p.credit(t, "USD", "300")
	_, err := p.svc.Fund.Debit(ctx, "USD", dec("120.50"), nil, "achat", accountant)
	require.NoError(t, err)

	rec, err := p.svc.Fund.Reconcile(ctx, "USD")
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	assert.True(t, rec.TotalIn.Equal(dec("300")))
	assert.True(t, rec.TotalOut.Equal(dec("120.50")))
	assert.True(t, rec.Balance.Equal(dec("179.50")))

	funds, err := p.svc.Fund.ListFunds(ctx)
	require.NoError(t, err)
	require.Len(t, funds, 2)

	_, err = p.svc.Fund.GetBalance(ctx, "EUR")
	assert.Error(t, err)
}

func TestFund_CreditAppendsExactlyOneEntree(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()
	before := p.balance(t, "USD")

	_, err := p.svc.Fund.Credit(ctx, "USD", dec("500"), "test", accountant)
	require.NoError(t, err)

	assert.True(t, p.balance(t, "USD").Sub(before).Equal(dec("500")))
	usd := "USD"
	movements, _, err := p.svc.Fund.ListMovements(ctx, &usd, 10, nil)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, domain.MovementIn, movements[0].Type)
	assert.True(t, movements[0].Amount.Equal(dec("500")))
}

func TestFund_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	p := newPortal(t)
	p.credit(t, "USD", "100")

	const workers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.svc.Fund.Debit(context.Background(), "USD", dec("60"), nil, "retrait", accountant)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.True(t, p.balance(t, "USD").Equal(dec("40")))

	rec, err := p.svc.Fund.Reconcile(context.Background(), "USD")
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	assert.True(t, rec.TotalOut.Equal(dec("60")))
}

func TestFund_SinglePayRacingBatchPaySettlesOnce(t *testing.T) {
	p := newPortal(t)
	p.credit(t, "USD", "500")
	r := p.awaitingPayment(t, "USD", "80")
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		failures  []error
	)
	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if err == nil {
			successes++
			return
		}
		failures = append(failures, err)
	}
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := p.svc.Requisition.SubmitAction(ctx, r.RequisitionID, dto.ActionRequest{Action: "pay"}, accountant)
		record(err)
	}()
	go func() {
		defer wg.Done()
		_, err := p.svc.Payment.PayBatch(ctx, []string{r.RequisitionID}, accountant)
		record(err)
	}()
	wg.Wait()

	assert.Equal(t, 1, successes)
	require.Len(t, failures, 1)
	assert.NotEqual(t, apperrors.KindInternal, apperrors.Kind(failures[0]), failures[0].Error())
	assert.Equal(t, domain.Paid(), p.state(t, r.RequisitionID))
	assert.True(t, p.balance(t, "USD").Equal(dec("420")))

	usd := "USD"
	movements, _, err := p.svc.Fund.ListMovements(ctx, &usd, 10, nil)
	require.NoError(t, err)
	sorties := 0
	for _, m := range movements {
		if m.Type == domain.MovementOut {
			sorties++
			assert.True(t, m.Amount.Equal(dec("80")))
		}
	}
	assert.Equal(t, 1, sorties)
}
