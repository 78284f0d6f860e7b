package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/requisition_portal/internal/core/ports/repositories"
)

type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func scanEnvelope(row pgx.Row) (domain.BudgetEnvelope, error) {
	var e domain.BudgetEnvelope
	err := row.Scan(&e.Category, &e.Month, &e.Total, &e.Consumed, &e.LastUpdatedAt)
	return e, err
}

// FindEnvelope implements portsrepo.BudgetRepositoryFacade.
func (r *PgxBudgetRepository) FindEnvelope(ctx context.Context, category string, month string) (*domain.BudgetEnvelope, error) {
	e, err := scanEnvelope(r.Pool.QueryRow(ctx, `
		SELECT category, month, total, consumed, last_updated_at
		FROM budget_envelopes
		WHERE category = $1 AND month = $2`, category, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("budget envelope " + category + " " + month)
		}
		return nil, apperrors.NewAppError(500, "failed to get budget envelope", err)
	}
	return &e, nil
}

// ListEnvelopes implements portsrepo.BudgetRepositoryFacade.
func (r *PgxBudgetRepository) ListEnvelopes(ctx context.Context, month string) ([]domain.BudgetEnvelope, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT category, month, total, consumed, last_updated_at
		FROM budget_envelopes
		WHERE month = $1
		ORDER BY category`, month)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list budget envelopes", err)
	}
	defer rows.Close()

	out := make([]domain.BudgetEnvelope, 0)
	for rows.Next() {
		e, err := scanEnvelope(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan budget envelope", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate budget envelopes", err)
	}
	return out, nil
}

// UpsertEnvelope implements portsrepo.BudgetRepositoryFacade.
func (r *PgxBudgetRepository) UpsertEnvelope(ctx context.Context, envelope domain.BudgetEnvelope) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO budget_envelopes (category, month, total, consumed, last_updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (category, month) DO UPDATE
		SET total = EXCLUDED.total, consumed = EXCLUDED.consumed, last_updated_at = EXCLUDED.last_updated_at`,
		envelope.Category, envelope.Month, envelope.Total, envelope.Consumed, envelope.LastUpdatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert budget envelope", err)
	}
	return nil
}
