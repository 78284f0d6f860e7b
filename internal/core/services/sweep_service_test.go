package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
	"github.com/SscSPs/requisition_portal/internal/platform/config"
)

func TestSweep_AdvancesIdleRequisitions(t *testing.T) {
	p := newPortal(t, func(c *config.Config) { c.StageTimeout = time.Hour })
	ctx := context.Background()
	stale := p.seedReview(t, domain.StageAnalyst, time.Now().UTC().Add(-2*time.Hour))
	fresh := p.seedReview(t, domain.StageAnalyst, time.Now().UTC().Add(-10*time.Minute))
	unswept := p.seedReview(t, domain.StageValidator, time.Now().UTC().Add(-3*time.Hour))

	n, err := p.svc.Sweep.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, domain.StageChallenger, p.state(t, stale).Stage())
	assert.Equal(t, domain.StageAnalyst, p.state(t, fresh).Stage())
	assert.Equal(t, domain.StageValidator, p.state(t, unswept).Stage())

	actions, err := p.store.ListActions(ctx, stale)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, domain.RoleSystem, actions[0].Role)

	// the advanced requisition was just touched, so a second run leaves it alone
	n, err = p.svc.Sweep.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSweep_DisabledWithoutTimeout(t *testing.T) {
	p := newPortal(t)
	id := p.seedReview(t, domain.StageAnalyst, time.Now().UTC().Add(-48*time.Hour))

	n, err := p.svc.Sweep.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, domain.StageAnalyst, p.state(t, id).Stage())
}

func TestSweep_NeverTouchesPaymentStage(t *testing.T) {
	p := newPortal(t, func(c *config.Config) {
		c.StageTimeout = time.Minute
		c.SweepStages = []string{"payment", "general-manager"}
	})
	r := p.awaitingPayment(t, "USD", "10")
	gmID := p.seedReview(t, domain.StageGeneralManager, time.Now().UTC().Add(-time.Hour))

	n, err := p.svc.Sweep.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, domain.AwaitingPayment(), p.state(t, r.RequisitionID))
	assert.Equal(t, domain.AwaitingPayment(), p.state(t, gmID))
}
