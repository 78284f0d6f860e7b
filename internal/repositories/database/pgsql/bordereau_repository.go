package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/requisition_portal/internal/core/ports/repositories"
	"github.com/SscSPs/requisition_portal/internal/models"
	"github.com/SscSPs/requisition_portal/internal/utils/mapping"
)

const bordereauColumns = `batch_id, number, status, payment_mode, created_by, created_at, aligned_at`

type PgxBordereauRepository struct {
	BaseRepository
}

func newPgxBordereauRepository(pool *pgxpool.Pool) portsrepo.BordereauRepositoryFacade {
	return &PgxBordereauRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BordereauRepositoryFacade = (*PgxBordereauRepository)(nil)

func scanBordereau(row pgx.Row) (models.Bordereau, error) {
	var m models.Bordereau
	err := row.Scan(&m.BatchID, &m.Number, &m.Status, &m.PaymentMode, &m.CreatedBy, &m.CreatedAt, &m.AlignedAt)
	return m, err
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func batchRequisitionIDs(ctx context.Context, q querier, batchID string) ([]string, error) {
	rows, err := q.Query(ctx, `SELECT requisition_id FROM requisitions WHERE batch_id = $1 ORDER BY number`, batchID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list requisitions of batch "+batchID, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan requisitions of batch "+batchID, err)
	}
	return ids, nil
}

// SaveBatch implements portsrepo.BordereauRepositoryFacade.
func (r *PgxBordereauRepository) SaveBatch(ctx context.Context, batch domain.BatchDocument) error {
	var mode *string
	if batch.PaymentMode != nil {
		v := string(*batch.PaymentMode)
		mode = &v
	}

	return r.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO bordereaux (`+bordereauColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			batch.BatchID, batch.Number, string(batch.Status), mode, batch.CreatedBy, batch.CreatedAt, batch.AlignedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("batch %s: %w", batch.Number, apperrors.ErrDuplicate)
			}
			return apperrors.NewAppError(500, "failed to insert batch "+batch.BatchID, err)
		}

		linked, err := tx.Query(ctx, `
			UPDATE requisitions
			SET batch_id = $1
			WHERE requisition_id = ANY($2) AND batch_id IS NULL AND stage = $3 AND status = $4
			RETURNING requisition_id`,
			batch.BatchID, batch.RequisitionIDs,
			string(domain.AwaitingPayment().Stage()), string(domain.AwaitingPayment().Status()))
		if err != nil {
			return apperrors.NewAppError(500, "failed to link requisitions to batch "+batch.BatchID, err)
		}
		ids, err := pgx.CollectRows(linked, pgx.RowTo[string])
		if err != nil {
			return apperrors.NewAppError(500, "failed to link requisitions to batch "+batch.BatchID, err)
		}
		if len(ids) == len(batch.RequisitionIDs) {
			return nil
		}
		return explainIneligible(ctx, tx, batch.BatchID, batch.RequisitionIDs, ids)
	})
}

// explainIneligible builds the reasons for every requisition the link update skipped.
func explainIneligible(ctx context.Context, tx pgx.Tx, batchID string, wanted, linked []string) error {
	done := make(map[string]bool, len(linked))
	for _, id := range linked {
		done[id] = true
	}

	ineligible := &apperrors.IneligibleError{}
	for _, id := range wanted {
		if done[id] {
			continue
		}
		var stage, status string
		var current *string
		err := tx.QueryRow(ctx, `SELECT stage, status, batch_id FROM requisitions WHERE requisition_id = $1`, id).Scan(&stage, &status, &current)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			ineligible.Add(id, "not found")
		case err != nil:
			return apperrors.NewAppError(500, "failed to read requisition "+id, err)
		case current != nil && *current != batchID:
			ineligible.Add(id, "already linked to batch "+*current)
		default:
			ineligible.Add(id, fmt.Sprintf("not awaiting payment (%s/%s)", stage, status))
		}
	}
	return ineligible
}

// FindBatchByID implements portsrepo.BordereauRepositoryFacade.
func (r *PgxBordereauRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.BatchDocument, error) {
	m, err := scanBordereau(r.Pool.QueryRow(ctx, `SELECT `+bordereauColumns+` FROM bordereaux WHERE batch_id = $1`, batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("batch " + batchID)
		}
		return nil, apperrors.NewAppError(500, "failed to get batch "+batchID, err)
	}
	ids, err := batchRequisitionIDs(ctx, r.Pool, batchID)
	if err != nil {
		return nil, err
	}
	b := mapping.ToDomainBatchDocument(m, ids)
	return &b, nil
}

// ListBatches implements portsrepo.BordereauRepositoryFacade.
func (r *PgxBordereauRepository) ListBatches(ctx context.Context) ([]domain.BatchDocument, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+bordereauColumns+` FROM bordereaux ORDER BY number DESC`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list batches", err)
	}
	var batches []models.Bordereau
	for rows.Next() {
		m, err := scanBordereau(rows)
		if err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan batch", err)
		}
		batches = append(batches, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate batches", err)
	}

	out := make([]domain.BatchDocument, 0, len(batches))
	for _, m := range batches {
		ids, err := batchRequisitionIDs(ctx, r.Pool, m.BatchID)
		if err != nil {
			return nil, err
		}
		out = append(out, mapping.ToDomainBatchDocument(m, ids))
	}
	return out, nil
}

// AlignBatch implements portsrepo.BordereauRepositoryFacade.
func (r *PgxBordereauRepository) AlignBatch(ctx context.Context, batchID string, mode *domain.PaymentMode, alignedAt time.Time) (*domain.BatchDocument, error) {
	var modeValue *string
	if mode != nil {
		v := string(*mode)
		modeValue = &v
	}

	var doc *domain.BatchDocument
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		m, err := scanBordereau(tx.QueryRow(ctx, `
			UPDATE bordereaux
			SET status = $2, aligned_at = $3, payment_mode = COALESCE($4, payment_mode)
			WHERE batch_id = $1 AND status = $5
			RETURNING `+bordereauColumns,
			batchID, string(domain.BatchAligned), alignedAt, modeValue, string(domain.BatchCreated)))
		if errors.Is(err, pgx.ErrNoRows) {
			var status string
			lookupErr := tx.QueryRow(ctx, `SELECT status FROM bordereaux WHERE batch_id = $1`, batchID).Scan(&status)
			if errors.Is(lookupErr, pgx.ErrNoRows) {
				return apperrors.NewNotFoundError("batch " + batchID)
			}
			if lookupErr != nil {
				return apperrors.NewAppError(500, "failed to read batch "+batchID, lookupErr)
			}
			return apperrors.NewInvalidTransitionError(fmt.Sprintf("batch %s is already %s", batchID, status))
		}
		if err != nil {
			return apperrors.NewAppError(500, "failed to align batch "+batchID, err)
		}

		if modeValue != nil {
			if _, err := tx.Exec(ctx, `UPDATE requisitions SET payment_mode = $2 WHERE batch_id = $1`, batchID, modeValue); err != nil {
				return apperrors.NewAppError(500, "failed to stamp payment mode on batch "+batchID, err)
			}
		}

		ids, err := batchRequisitionIDs(ctx, tx, batchID)
		if err != nil {
			return err
		}
		b := mapping.ToDomainBatchDocument(m, ids)
		doc = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}
