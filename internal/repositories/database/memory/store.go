// Package memory is an in-process persistence adapter with the same atomicity
// guarantees as the PostgreSQL adapter: every operation runs under one mutex,
// so each call is all-or-nothing and observed in a single order.
package memory

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/requisition_portal/internal/core/ports/repositories"
)

type envelopeKey struct {
	category string
	month    string
}

type sequenceKey struct {
	name string
	year int
}

// Store holds every table of the portal in memory.
type Store struct {
	mu           sync.Mutex
	requisitions map[string]*domain.Requisition
	actions      map[string][]domain.ActionRecord
	funds        map[string]*domain.CurrencyFund
	movements    []domain.Movement
	envelopes    map[envelopeKey]domain.BudgetEnvelope
	batches      map[string]*domain.BatchDocument
	sequences    map[sequenceKey]int64
}

// NewStore creates an empty store with a zero balance fund per currency.
func NewStore(currencies ...string) *Store {
	s := &Store{
		requisitions: make(map[string]*domain.Requisition),
		actions:      make(map[string][]domain.ActionRecord),
		funds:        make(map[string]*domain.CurrencyFund),
		envelopes:    make(map[envelopeKey]domain.BudgetEnvelope),
		batches:      make(map[string]*domain.BatchDocument),
		sequences:    make(map[sequenceKey]int64),
	}
	for _, c := range currencies {
		s.funds[c] = &domain.CurrencyFund{Currency: c, Balance: decimal.Zero}
	}
	return s
}

// NewRepositoryProvider exposes store through every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RequisitionRepo: store,
		FundRepo:        store,
		BudgetRepo:      store,
		BordereauRepo:   store,
		SequenceRepo:    store,
	}
}

var (
	_ portsrepo.RequisitionRepositoryFacade = (*Store)(nil)
	_ portsrepo.FundRepositoryFacade        = (*Store)(nil)
	_ portsrepo.BudgetRepositoryFacade      = (*Store)(nil)
	_ portsrepo.BordereauRepositoryFacade   = (*Store)(nil)
	_ portsrepo.SequenceRepository          = (*Store)(nil)
)

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneMode(p *domain.PaymentMode) *domain.PaymentMode {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneRequisition(r *domain.Requisition, withItems bool) domain.Requisition {
	c := *r
	c.BatchID = cloneString(r.BatchID)
	c.PaymentMode = cloneMode(r.PaymentMode)
	c.RespondsTo = cloneString(r.RespondsTo)
	c.Items = nil
	if withItems && len(r.Items) > 0 {
		c.Items = make([]domain.RequisitionItem, len(r.Items))
		for i, it := range r.Items {
			it.Site = cloneString(it.Site)
			c.Items[i] = it
		}
	}
	return c
}

func cloneBatch(b *domain.BatchDocument) domain.BatchDocument {
	c := *b
	c.PaymentMode = cloneMode(b.PaymentMode)
	if b.AlignedAt != nil {
		t := *b.AlignedAt
		c.AlignedAt = &t
	}
	c.RequisitionIDs = append([]string(nil), b.RequisitionIDs...)
	return c
}
