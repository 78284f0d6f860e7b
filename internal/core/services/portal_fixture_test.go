package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
	portssvc "github.com/SscSPs/requisition_portal/internal/core/ports/services"
	"github.com/SscSPs/requisition_portal/internal/core/services"
	"github.com/SscSPs/requisition_portal/internal/dto"
	"github.com/SscSPs/requisition_portal/internal/platform/config"
	"github.com/SscSPs/requisition_portal/internal/repositories/database/memory"
)

var (
	initiator  = domain.Actor{UserID: "u-init", Role: domain.RoleInitiator, Service: "logistique"}
	colleague  = domain.Actor{UserID: "u-init-2", Role: domain.RoleInitiator, Service: "logistique"}
	analyst    = domain.Actor{UserID: "u-analyst", Role: domain.RoleAnalyst}
	challenger = domain.Actor{UserID: "u-challenger", Role: domain.RoleChallenger}
	validator  = domain.Actor{UserID: "u-validator", Role: domain.RoleValidator}
	gm         = domain.Actor{UserID: "u-dg", Role: domain.RoleGM}
	accountant = domain.Actor{UserID: "u-compta", Role: domain.RoleAccountant}
	admin      = domain.Actor{UserID: "u-admin", Role: domain.RoleAdmin}
)

// portal is a complete service graph on top of a fresh in-memory store.
type portal struct {
	cfg   *config.Config
	store *memory.Store
	svc   *portssvc.ServiceContainer
}

func testConfig() *config.Config {
	return &config.Config{
		StorageDriver:     config.StorageMemory,
		ReferenceCurrency: "USD",
		SecondaryCurrency: "CDF",
		ExchangeRates: map[string]decimal.Decimal{
			"CDF": decimal.RequireFromString("0.0004"),
		},
		SweepStages: []string{"analyst", "challenger"},
	}
}

func newPortal(t *testing.T, tweak ...func(*config.Config)) *portal {
	t.Helper()
	cfg := testConfig()
	for _, f := range tweak {
		f(cfg)
	}
	store := memory.NewStore(cfg.Currencies()...)
	return &portal{
		cfg:   cfg,
		store: store,
		svc:   services.NewServiceContainer(cfg, memory.NewRepositoryProvider(store)),
	}
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func requisitionRequest(currency, amount string) dto.CreateRequisitionRequest {
	return dto.CreateRequisitionRequest{
		Object:   "fournitures de bureau",
		Category: "fournitures",
		Currency: currency,
		Items: []dto.RequisitionItemRequest{
			{Description: "lot", Quantity: dec("1"), UnitPrice: dec(amount)},
		},
	}
}

func (p *portal) create(t *testing.T, currency, amount string) *domain.Requisition {
	t.Helper()
	r, err := p.svc.Requisition.CreateRequisition(context.Background(), requisitionRequest(currency, amount), initiator)
	require.NoError(t, err)
	return r
}

func (p *portal) act(t *testing.T, id string, actor domain.Actor, action domain.ActionKind) *domain.TransitionResult {
	t.Helper()
	res, err := p.svc.Requisition.SubmitAction(context.Background(), id, dto.ActionRequest{Action: string(action), Comment: "ok"}, actor)
	require.NoError(t, err, "%s by %s", action, actor.Role)
	return res
}

// awaitingPayment walks a fresh requisition through every review stage.
func (p *portal) awaitingPayment(t *testing.T, currency, amount string) *domain.Requisition {
	t.Helper()
	r := p.create(t, currency, amount)
	for _, a := range []domain.Actor{initiator, analyst, challenger, validator, gm} {
		p.act(t, r.RequisitionID, a, domain.ActionApprove)
	}
	got, err := p.store.FindRequisitionByID(context.Background(), r.RequisitionID)
	require.NoError(t, err)
	require.Equal(t, domain.AwaitingPayment(), got.State)
	return got
}

func (p *portal) credit(t *testing.T, currency, amount string) {
	t.Helper()
	_, err := p.svc.Fund.Credit(context.Background(), currency, dec(amount), "ravitaillement", accountant)
	require.NoError(t, err)
}

func (p *portal) balance(t *testing.T, currency string) decimal.Decimal {
	t.Helper()
	f, err := p.svc.Fund.GetBalance(context.Background(), currency)
	require.NoError(t, err)
	return f.Balance
}

func (p *portal) state(t *testing.T, id string) domain.State {
	t.Helper()
	r, err := p.store.FindRequisitionByID(context.Background(), id)
	require.NoError(t, err)
	return r.State
}

// seedReview stores a requisition sitting at stage since updatedAt.
func (p *portal) seedReview(t *testing.T, stage domain.Stage, updatedAt time.Time) string {
	t.Helper()
	state, err := domain.InReview(stage)
	require.NoError(t, err)
	id := "seed-" + string(stage) + "-" + updatedAt.Format("150405.000000000")
	err = p.store.SaveRequisition(context.Background(), domain.Requisition{
		RequisitionID: id,
		Number:        "REQ-SEED-" + string(stage),
		Object:        "seed",
		Category:      "fournitures",
		Currency:      "USD",
		Amount:        dec("10"),
		State:         state,
		InitiatorID:   initiator.UserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     updatedAt,
			CreatedBy:     initiator.UserID,
			LastUpdatedAt: updatedAt,
			LastUpdatedBy: initiator.UserID,
		},
	})
	require.NoError(t, err)
	return id
}
