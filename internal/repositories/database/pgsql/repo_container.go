package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/requisition_portal/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every PostgreSQL repository on dbPool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RequisitionRepo: newPgxRequisitionRepository(dbPool),
		FundRepo:        newPgxFundRepository(dbPool),
		BudgetRepo:      newPgxBudgetRepository(dbPool),
		BordereauRepo:   newPgxBordereauRepository(dbPool),
		SequenceRepo:    newPgxSequenceRepository(dbPool),
	}
}

// EnsureFunds creates a zero balance fund for every configured currency missing one.
func EnsureFunds(ctx context.Context, dbPool *pgxpool.Pool, currencies []string) error {
	for _, c := range currencies {
		_, err := dbPool.Exec(ctx, `INSERT INTO currency_funds (currency) VALUES ($1) ON CONFLICT (currency) DO NOTHING`, c)
		if err != nil {
			return fmt.Errorf("failed to ensure fund %s: %w", c, err)
		}
	}
	return nil
}
