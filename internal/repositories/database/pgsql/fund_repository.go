package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/requisition_portal/internal/core/ports/repositories"
	"github.com/SscSPs/requisition_portal/internal/models"
	"github.com/SscSPs/requisition_portal/internal/utils/mapping"
	"github.com/SscSPs/requisition_portal/internal/utils/pagination"
)

const movementColumns = `movement_id, movement_type, currency, amount, description, requisition_id, created_by, created_at`

type PgxFundRepository struct {
	BaseRepository
}

func newPgxFundRepository(pool *pgxpool.Pool) portsrepo.FundRepositoryFacade {
	return &PgxFundRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FundRepositoryFacade = (*PgxFundRepository)(nil)

func scanFund(row pgx.Row) (*domain.CurrencyFund, error) {
	var m models.CurrencyFund
	if err := row.Scan(&m.Currency, &m.Balance, &m.Version, &m.LastUpdatedAt); err != nil {
		return nil, err
	}
	fund := mapping.ToDomainCurrencyFund(m)
	return &fund, nil
}

// insertMovementTx appends a movement row.
func insertMovementTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) error {
	m := mapping.ToModelMovement(movement)
	_, err := tx.Exec(ctx, `INSERT INTO fund_movements (`+movementColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.MovementID, m.MovementType, m.Currency, m.Amount, m.Description, m.RequisitionID, m.CreatedBy, m.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert movement "+m.MovementID, err)
	}
	return nil
}

// applyMovementTx moves the fund balance and records the movement inside tx.
// A sortie is a single conditional update that only matches when the balance covers it.
func applyMovementTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) (*domain.CurrencyFund, error) {
	var query string
	if movement.Type == domain.MovementOut {
		query = `
			UPDATE currency_funds
			SET balance = balance - $2, version = version + 1, last_updated_at = $3
			WHERE currency = $1 AND balance >= $2
			RETURNING currency, balance, version, last_updated_at`
	} else {
		query = `
			UPDATE currency_funds
			SET balance = balance + $2, version = version + 1, last_updated_at = $3
			WHERE currency = $1
			RETURNING currency, balance, version, last_updated_at`
	}

	fund, err := scanFund(tx.QueryRow(ctx, query, movement.Currency, movement.Amount, movement.CreatedAt))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAppError(500, "failed to update fund "+movement.Currency, err)
		}
		var balance decimal.Decimal
		lookupErr := tx.QueryRow(ctx, `SELECT balance FROM currency_funds WHERE currency = $1`, movement.Currency).Scan(&balance)
		if errors.Is(lookupErr, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("fund " + movement.Currency)
		}
		if lookupErr != nil {
			return nil, apperrors.NewAppError(500, "failed to read fund "+movement.Currency, lookupErr)
		}
		return nil, &apperrors.ShortfallError{Shortfalls: []apperrors.Shortfall{{
			Currency:  movement.Currency,
			Required:  movement.Amount.StringFixed(2),
			Available: balance.StringFixed(2),
			Missing:   movement.Amount.Sub(balance).StringFixed(2),
		}}}
	}

	if err := insertMovementTx(ctx, tx, movement); err != nil {
		return nil, err
	}
	return fund, nil
}

// lockFundsTx locks the fund rows of currencies in sorted order and returns their balances.
func lockFundsTx(ctx context.Context, tx pgx.Tx, currencies []string) (map[string]decimal.Decimal, error) {
	sorted := append([]string(nil), currencies...)
	sort.Strings(sorted)

	balances := make(map[string]decimal.Decimal, len(sorted))
	for _, currency := range sorted {
		if _, done := balances[currency]; done {
			continue
		}
		var balance decimal.Decimal
		err := tx.QueryRow(ctx, `SELECT balance FROM currency_funds WHERE currency = $1 FOR UPDATE`, currency).Scan(&balance)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("fund " + currency)
		}
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to lock fund "+currency, err)
		}
		balances[currency] = balance
	}
	return balances, nil
}

// checkShortfalls reports every currency whose locked balance cannot cover the debits.
func checkShortfalls(debits []domain.Movement, balances map[string]decimal.Decimal) error {
	required := make(map[string]decimal.Decimal)
	for _, d := range debits {
		required[d.Currency] = required[d.Currency].Add(d.Amount)
	}
	currencies := make([]string, 0, len(required))
	for c := range required {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	var shortfalls []apperrors.Shortfall
	for _, c := range currencies {
		need, have := required[c], balances[c]
		if have.LessThan(need) {
			shortfalls = append(shortfalls, apperrors.Shortfall{
				Currency:  c,
				Required:  need.StringFixed(2),
				Available: have.StringFixed(2),
				Missing:   need.Sub(have).StringFixed(2),
			})
		}
	}
	if len(shortfalls) > 0 {
		return &apperrors.ShortfallError{Shortfalls: shortfalls}
	}
	return nil
}

func debitCurrencies(debits []domain.Movement) []string {
	out := make([]string, 0, len(debits))
	for _, d := range debits {
		out = append(out, d.Currency)
	}
	return out
}

// ApplyMovement implements portsrepo.FundWriter.
func (r *PgxFundRepository) ApplyMovement(ctx context.Context, movement domain.Movement) (*domain.CurrencyFund, error) {
	var fund *domain.CurrencyFund
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		var err error
		fund, err = applyMovementTx(ctx, tx, movement)
		return err
	})
	if err != nil {
		return nil, err
	}
	return fund, nil
}

// FindFund implements portsrepo.FundReader.
func (r *PgxFundRepository) FindFund(ctx context.Context, currency string) (*domain.CurrencyFund, error) {
	fund, err := scanFund(r.Pool.QueryRow(ctx,
		`SELECT currency, balance, version, last_updated_at FROM currency_funds WHERE currency = $1`, currency))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("fund " + currency)
		}
		return nil, apperrors.NewAppError(500, "failed to read fund "+currency, err)
	}
	return fund, nil
}

// ListFunds implements portsrepo.FundReader.
func (r *PgxFundRepository) ListFunds(ctx context.Context) ([]domain.CurrencyFund, error) {
	rows, err := r.Pool.Query(ctx, `SELECT currency, balance, version, last_updated_at FROM currency_funds ORDER BY currency`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list funds", err)
	}
	defer rows.Close()

	funds := make([]domain.CurrencyFund, 0, 2)
	for rows.Next() {
		fund, err := scanFund(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fund", err)
		}
		funds = append(funds, *fund)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate funds", err)
	}
	return funds, nil
}

// ListMovements implements portsrepo.FundReader using keyset pagination on (created_at, movement_id).
func (r *PgxFundRepository) ListMovements(ctx context.Context, currency *string, limit int, nextToken *string) ([]domain.Movement, *string, error) {
	query := `SELECT ` + movementColumns + ` FROM fund_movements WHERE 1=1`
	args := make([]any, 0, 4)

	if currency != nil {
		args = append(args, *currency)
		query += ` AND currency = $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		after, afterID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, after, afterID)
		query += fmt.Sprintf(` AND (created_at, movement_id) < ($%d, $%d)`, len(args)-1, len(args))
	}
	// one extra row tells whether another page exists
	args = append(args, limit+1)
	query += ` ORDER BY created_at DESC, movement_id DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list movements", err)
	}
	defer rows.Close()

	movements := make([]domain.Movement, 0, limit)
	for rows.Next() {
		var m models.Movement
		if err := rows.Scan(&m.MovementID, &m.MovementType, &m.Currency, &m.Amount, &m.Description, &m.RequisitionID, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan movement", err)
		}
		movements = append(movements, mapping.ToDomainMovement(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate movements", err)
	}

	var next *string
	if len(movements) > limit {
		movements = movements[:limit]
		last := movements[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.MovementID)
		next = &token
	}
	return movements, next, nil
}

// SumMovements implements portsrepo.FundReader.
func (r *PgxFundRepository) SumMovements(ctx context.Context, currency string) (decimal.Decimal, decimal.Decimal, error) {
	var totalIn, totalOut decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount) FILTER (WHERE movement_type = 'entree'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE movement_type = 'sortie'), 0)
		FROM fund_movements
		WHERE currency = $1`, currency).Scan(&totalIn, &totalOut)
	if err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum movements of "+currency, err)
	}
	return totalIn, totalOut, nil
}
