package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/requisition_portal/internal/core/ports/repositories"
	"github.com/SscSPs/requisition_portal/internal/models"
	"github.com/SscSPs/requisition_portal/internal/utils/mapping"
)

const requisitionColumns = `requisition_id, number, object, category, currency, amount, stage, status,
	initiator_id, department, batch_id, payment_mode, responds_to,
	created_at, created_by, last_updated_at, last_updated_by`

const actionColumns = `action_id, requisition_id, user_id, role, action, comment,
	stage_before, stage_after, status_before, status_after, created_at`

type PgxRequisitionRepository struct {
	BaseRepository
}

func newPgxRequisitionRepository(pool *pgxpool.Pool) portsrepo.RequisitionRepositoryFacade {
	return &PgxRequisitionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RequisitionRepositoryFacade = (*PgxRequisitionRepository)(nil)

func scanRequisition(row pgx.Row) (*domain.Requisition, error) {
	var m models.Requisition
	err := row.Scan(
		&m.RequisitionID, &m.Number, &m.Object, &m.Category, &m.Currency, &m.Amount, &m.Stage, &m.Status,
		&m.InitiatorID, &m.Department, &m.BatchID, &m.PaymentMode, &m.RespondsTo,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d, err := mapping.ToDomainRequisition(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "corrupt requisition row", err)
	}
	return &d, nil
}

// FindRequisitionByID implements portsrepo.RequisitionReader.
func (r *PgxRequisitionRepository) FindRequisitionByID(ctx context.Context, requisitionID string) (*domain.Requisition, error) {
	req, err := scanRequisition(r.Pool.QueryRow(ctx,
		`SELECT `+requisitionColumns+` FROM requisitions WHERE requisition_id = $1`, requisitionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("requisition " + requisitionID)
		}
		return nil, apperrors.NewAppError(500, "failed to get requisition "+requisitionID, err)
	}

	items, err := r.findItems(ctx, requisitionID)
	if err != nil {
		return nil, err
	}
	req.Items = items
	return req, nil
}

func (r *PgxRequisitionRepository) findItems(ctx context.Context, requisitionID string) ([]domain.RequisitionItem, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT item_id, requisition_id, position, description, quantity, unit_price, line_total, site
		FROM requisition_items
		WHERE requisition_id = $1
		ORDER BY position`, requisitionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to get items of requisition "+requisitionID, err)
	}
	defer rows.Close()

	items := make([]domain.RequisitionItem, 0)
	for rows.Next() {
		var m models.RequisitionItem
		if err := rows.Scan(&m.ItemID, &m.RequisitionID, &m.Position, &m.Description, &m.Quantity, &m.UnitPrice, &m.LineTotal, &m.Site); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan requisition item", err)
		}
		items = append(items, mapping.ToDomainRequisitionItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate requisition items", err)
	}
	return items, nil
}

// FindRequisitionsByIDs implements portsrepo.RequisitionReader.
func (r *PgxRequisitionRepository) FindRequisitionsByIDs(ctx context.Context, requisitionIDs []string) (map[string]domain.Requisition, error) {
	out := make(map[string]domain.Requisition, len(requisitionIDs))
	if len(requisitionIDs) == 0 {
		return out, nil
	}
	rows, err := r.Pool.Query(ctx,
		`SELECT `+requisitionColumns+` FROM requisitions WHERE requisition_id = ANY($1)`, requisitionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to get requisitions by ids", err)
	}
	defer rows.Close()

	for rows.Next() {
		req, err := scanRequisition(rows)
		if err != nil {
			return nil, err
		}
		out[req.RequisitionID] = *req
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate requisitions", err)
	}
	return out, nil
}

// ListRequisitions implements portsrepo.RequisitionReader.
func (r *PgxRequisitionRepository) ListRequisitions(ctx context.Context, filter domain.RequisitionFilter) ([]domain.Requisition, error) {
	conditions := make([]string, 0, 5)
	args := make([]any, 0, 6)
	add := func(cond string, v any) {
		args = append(args, v)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Stage != nil {
		add("stage = $%d", string(*filter.Stage))
	}
	if filter.Status != nil {
		add("status = $%d", string(*filter.Status))
	}
	if filter.InitiatorID != nil {
		add("initiator_id = $%d", *filter.InitiatorID)
	}
	if filter.BatchID != nil {
		add("batch_id = $%d", *filter.BatchID)
	}
	if filter.UpdatedBefore != nil {
		add("last_updated_at < $%d", *filter.UpdatedBefore)
	}

	query := `SELECT ` + requisitionColumns + ` FROM requisitions`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC, requisition_id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list requisitions", err)
	}
	defer rows.Close()

	out := make([]domain.Requisition, 0)
	for rows.Next() {
		req, err := scanRequisition(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate requisitions", err)
	}
	return out, nil
}

// ListActions implements portsrepo.RequisitionReader.
func (r *PgxRequisitionRepository) ListActions(ctx context.Context, requisitionID string) ([]domain.ActionRecord, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+actionColumns+` FROM requisition_actions WHERE requisition_id = $1 ORDER BY created_at, action_id`, requisitionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list actions of requisition "+requisitionID, err)
	}
	defer rows.Close()

	out := make([]domain.ActionRecord, 0)
	for rows.Next() {
		var m models.ActionRecord
		if err := rows.Scan(&m.ActionID, &m.RequisitionID, &m.UserID, &m.Role, &m.Action, &m.Comment,
			&m.StageBefore, &m.StageAfter, &m.StatusBefore, &m.StatusAfter, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan action", err)
		}
		out = append(out, mapping.ToDomainActionRecord(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate actions", err)
	}
	return out, nil
}

func queueItems(batch *pgx.Batch, requisitionID string, items []domain.RequisitionItem) {
	for i, item := range items {
		item.RequisitionID = requisitionID
		m := mapping.ToModelRequisitionItem(item, i+1)
		batch.Queue(`
			INSERT INTO requisition_items (item_id, requisition_id, position, description, quantity, unit_price, line_total, site)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			m.ItemID, m.RequisitionID, m.Position, m.Description, m.Quantity, m.UnitPrice, m.LineTotal, m.Site)
	}
}

func sendBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return err
		}
	}
	return br.Close()
}

// SaveRequisition implements portsrepo.RequisitionWriter.
func (r *PgxRequisitionRepository) SaveRequisition(ctx context.Context, requisition domain.Requisition) error {
	m := mapping.ToModelRequisition(requisition)
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO requisitions (`+requisitionColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			m.RequisitionID, m.Number, m.Object, m.Category, m.Currency, m.Amount, m.Stage, m.Status,
			m.InitiatorID, m.Department, m.BatchID, m.PaymentMode, m.RespondsTo,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("requisition %s: %w", m.RequisitionID, apperrors.ErrDuplicate)
			}
			return apperrors.NewAppError(500, "failed to insert requisition "+m.RequisitionID, err)
		}

		batch := &pgx.Batch{}
		queueItems(batch, m.RequisitionID, requisition.Items)
		if err := sendBatch(ctx, tx, batch); err != nil {
			return apperrors.NewAppError(500, "failed to insert items of requisition "+m.RequisitionID, err)
		}
		return nil
	})
}

// UpdateRequisitionContent implements portsrepo.RequisitionWriter.
func (r *PgxRequisitionRepository) UpdateRequisitionContent(ctx context.Context, requisition domain.Requisition) error {
	m := mapping.ToModelRequisition(requisition)
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE requisitions
			SET object = $2, category = $3, currency = $4, amount = $5, last_updated_at = $6, last_updated_by = $7
			WHERE requisition_id = $1 AND stage = $8 AND batch_id IS NULL`,
			m.RequisitionID, m.Object, m.Category, m.Currency, m.Amount, m.LastUpdatedAt, m.LastUpdatedBy,
			string(domain.StageInitiator),
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update requisition "+m.RequisitionID, err)
		}
		if tag.RowsAffected() == 0 {
			return r.explainMiss(ctx, tx, m.RequisitionID, "can no longer be edited")
		}

		if _, err := tx.Exec(ctx, `DELETE FROM requisition_items WHERE requisition_id = $1`, m.RequisitionID); err != nil {
			return apperrors.NewAppError(500, "failed to clear items of requisition "+m.RequisitionID, err)
		}
		batch := &pgx.Batch{}
		queueItems(batch, m.RequisitionID, requisition.Items)
		if err := sendBatch(ctx, tx, batch); err != nil {
			return apperrors.NewAppError(500, "failed to insert items of requisition "+m.RequisitionID, err)
		}
		return nil
	})
}

// explainMiss turns a conditional update that matched no row into NotFound or InvalidTransition.
func (r *PgxRequisitionRepository) explainMiss(ctx context.Context, tx pgx.Tx, requisitionID, what string) error {
	var stage, status string
	err := tx.QueryRow(ctx, `SELECT stage, status FROM requisitions WHERE requisition_id = $1`, requisitionID).Scan(&stage, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError("requisition " + requisitionID)
	}
	if err != nil {
		return apperrors.NewAppError(500, "failed to read requisition "+requisitionID, err)
	}
	return apperrors.NewInvalidTransitionError(fmt.Sprintf("requisition %s is %s/%s and %s", requisitionID, stage, status, what))
}

// applyTransitionTx moves one requisition from cmd.Expected to cmd.Next and logs the action.
func (r *PgxRequisitionRepository) applyTransitionTx(ctx context.Context, tx pgx.Tx, cmd domain.TransitionCommand) (*domain.Requisition, error) {
	var mode *string
	if cmd.PaymentMode != nil {
		v := string(*cmd.PaymentMode)
		mode = &v
	}

	req, err := scanRequisition(tx.QueryRow(ctx, `
		UPDATE requisitions
		SET stage = $2, status = $3, payment_mode = COALESCE($4, payment_mode),
		    last_updated_at = $5, last_updated_by = $6
		WHERE requisition_id = $1 AND stage = $7 AND status = $8
		RETURNING `+requisitionColumns,
		cmd.RequisitionID, string(cmd.Next.Stage()), string(cmd.Next.Status()), mode,
		cmd.UpdatedAt, cmd.Record.UserID,
		string(cmd.Expected.Stage()), string(cmd.Expected.Status()),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.explainMiss(ctx, tx, cmd.RequisitionID, "expected "+cmd.Expected.String())
		}
		return nil, apperrors.NewAppError(500, "failed to transition requisition "+cmd.RequisitionID, err)
	}

	a := mapping.ToModelActionRecord(cmd.Record)
	_, err = tx.Exec(ctx, `
		INSERT INTO requisition_actions (`+actionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ActionID, a.RequisitionID, a.UserID, a.Role, a.Action, a.Comment,
		a.StageBefore, a.StageAfter, a.StatusBefore, a.StatusAfter, a.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert action "+a.ActionID, err)
	}
	return req, nil
}

// ApplyTransition implements portsrepo.RequisitionWriter. A paying transition
// locks the fund row before the requisition row, the same order ApplyBatchPayment uses.
func (r *PgxRequisitionRepository) ApplyTransition(ctx context.Context, cmd domain.TransitionCommand) (*domain.Requisition, error) {
	var req *domain.Requisition
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		var debits []domain.Movement
		var balances map[string]decimal.Decimal
		if cmd.Debit != nil {
			debits = []domain.Movement{*cmd.Debit}
			var err error
			if balances, err = lockFundsTx(ctx, tx, debitCurrencies(debits)); err != nil {
				return err
			}
		}

		var err error
		if req, err = r.applyTransitionTx(ctx, tx, cmd); err != nil {
			return err
		}

		if cmd.Debit != nil {
			if err := checkShortfalls(debits, balances); err != nil {
				return err
			}
			if _, err := applyMovementTx(ctx, tx, *cmd.Debit); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if req.Items, err = r.findItems(ctx, req.RequisitionID); err != nil {
		return nil, err
	}
	return req, nil
}

// ApplyBatchPayment implements portsrepo.RequisitionWriter.
func (r *PgxRequisitionRepository) ApplyBatchPayment(ctx context.Context, plan domain.BatchPaymentPlan) error {
	transitions := append([]domain.TransitionCommand(nil), plan.Transitions...)
	sort.Slice(transitions, func(i, j int) bool { return transitions[i].RequisitionID < transitions[j].RequisitionID })

	return r.WithTx(ctx, func(tx pgx.Tx) error {
		balances, err := lockFundsTx(ctx, tx, debitCurrencies(plan.Debits))
		if err != nil {
			return err
		}
		for _, cmd := range transitions {
			if _, err := r.applyTransitionTx(ctx, tx, cmd); err != nil {
				return err
			}
		}
		if err := checkShortfalls(plan.Debits, balances); err != nil {
			return err
		}
		for _, d := range plan.Debits {
			if _, err := applyMovementTx(ctx, tx, d); err != nil {
				return err
			}
		}
		return nil
	})
}
