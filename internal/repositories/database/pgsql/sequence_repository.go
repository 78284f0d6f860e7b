package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	portsrepo "github.com/SscSPs/requisition_portal/internal/core/ports/repositories"
)

type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextValue implements portsrepo.SequenceRepository. The upsert holds the row lock
// until commit so concurrent callers never share a value.
func (r *PgxSequenceRepository) NextValue(ctx context.Context, name string, year int) (int64, error) {
	var value int64
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO sequences (name, year, value) VALUES ($1, $2, 1)
		ON CONFLICT (name, year) DO UPDATE SET value = sequences.value + 1
		RETURNING value`, name, year).Scan(&value)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to advance sequence "+name, err)
	}
	return value, nil
}
