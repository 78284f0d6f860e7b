package services

import (
	"context"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
	"github.com/SscSPs/requisition_portal/internal/dto"
	"github.com/shopspring/decimal"
)

// BudgetCheckerSvc answers whether an amount fits a monthly envelope.
type BudgetCheckerSvc interface {
	// Check is read-only and advisory. currency defaults to the reference currency when empty.
	Check(ctx context.Context, category string, amount decimal.Decimal, currency string, month string) (*domain.BudgetCheckResult, error)
	// Normalize converts amount into the reference currency.
	Normalize(amount decimal.Decimal, currency string) (decimal.Decimal, error)
}

// BudgetSvcFacade adds envelope maintenance to the checker.
type BudgetSvcFacade interface {
	BudgetCheckerSvc
	UpsertEnvelope(ctx context.Context, req dto.BudgetEnvelopeRequest, actor domain.Actor) (*domain.BudgetEnvelope, error)
	ListEnvelopes(ctx context.Context, month string) ([]domain.BudgetEnvelope, error)
}
