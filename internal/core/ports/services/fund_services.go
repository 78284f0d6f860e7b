package services

import (
	"context"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FundReaderSvc defines read operations on the fund ledger.
type FundReaderSvc interface {
	GetBalance(ctx context.Context, currency string) (*domain.CurrencyFund, error)
	ListFunds(ctx context.Context) ([]domain.CurrencyFund, error)
	ListMovements(ctx context.Context, currency *string, limit int, nextToken *string) ([]domain.Movement, *string, error)
	Reconcile(ctx context.Context, currency string) (*domain.Reconciliation, error)
}

// FundWriterSvc defines ledger movements.
type FundWriterSvc interface {
	// Credit records an entree movement and increases the balance.
	Credit(ctx context.Context, currency string, amount decimal.Decimal, description string, actor domain.Actor) (*domain.CurrencyFund, error)
	// Debit records a sortie movement if the balance covers it.
	Debit(ctx context.Context, currency string, amount decimal.Decimal, requisitionID *string, description string, actor domain.Actor) (*domain.CurrencyFund, error)
}

// FundSvcFacade combines all fund-related service interfaces.
type FundSvcFacade interface {
	FundReaderSvc
	FundWriterSvc
}

// PaymentSvc settles several approved requisitions at once.
type PaymentSvc interface {
	PayBatch(ctx context.Context, requisitionIDs []string, actor domain.Actor) (*domain.BatchPaymentSummary, error)
}
