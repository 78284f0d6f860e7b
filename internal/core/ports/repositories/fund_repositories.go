package repositories

import (
	"context"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FundReader defines read operations for the fund ledger
type FundReader interface {
	// FindFund retrieves the fund of a currency.
	FindFund(ctx context.Context, currency string) (*domain.CurrencyFund, error)

	// ListFunds retrieves every currency fund ordered by currency.
	ListFunds(ctx context.Context) ([]domain.CurrencyFund, error)

	// ListMovements retrieves movements newest first using token-based pagination.
	ListMovements(ctx context.Context, currency *string, limit int, nextToken *string) ([]domain.Movement, *string, error)

	// SumMovements returns the total of entree and sortie movements of a currency.
	SumMovements(ctx context.Context, currency string) (totalIn decimal.Decimal, totalOut decimal.Decimal, err error)
}

// FundWriter defines write operations for the fund ledger
type FundWriter interface {
	// ApplyMovement records movement and adjusts the fund balance atomically.
	// A sortie only succeeds if the balance covers it, otherwise
	// apperrors.ErrInsufficientFunds is returned and nothing is written.
	ApplyMovement(ctx context.Context, movement domain.Movement) (*domain.CurrencyFund, error)
}

// FundRepositoryFacade combines all fund-related repository interfaces
type FundRepositoryFacade interface {
	FundReader
	FundWriter
}
