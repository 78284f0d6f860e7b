package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/requisition_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/requisition_portal/internal/core/ports/services"
	"github.com/SscSPs/requisition_portal/internal/platform/metrics"
)

const (
	defaultMovementPageSize = 50
	maxMovementPageSize     = 500
)

// fundService is the fund ledger: one balance per currency, changed only
// together with an immutable movement.
type fundService struct {
	BaseService
	fundRepo   portsrepo.FundRepositoryFacade
	currencies map[string]bool
}

// NewFundService creates a fund ledger service for the given currencies.
func NewFundService(fundRepo portsrepo.FundRepositoryFacade, currencies []string) portssvc.FundSvcFacade {
	known := make(map[string]bool, len(currencies))
	for _, c := range currencies {
		known[strings.ToUpper(c)] = true
	}
	return &fundService{
		BaseService: newBaseService(),
		fundRepo:    fundRepo,
		currencies:  known,
	}
}

var _ portssvc.FundSvcFacade = (*fundService)(nil)

func (s *fundService) normalizeCurrency(currency string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if !s.currencies[code] {
		return "", apperrors.NewValidationError(fmt.Sprintf("unsupported currency %q", currency))
	}
	return code, nil
}

// validateAmount refuses non-positive amounts and amounts finer than the
// ledger's two decimal places.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.NewValidationError("amount must be positive", "montant: "+amount.String())
	}
	if !amount.Equal(amount.Round(2)) {
		return apperrors.NewValidationError("amount has more than 2 decimal places", "montant: "+amount.String())
	}
	return nil
}

// Credit implements portssvc.FundWriterSvc.
func (s *fundService) Credit(ctx context.Context, currency string, amount decimal.Decimal, description string, actor domain.Actor) (*domain.CurrencyFund, error) {
	if actor.Role != domain.RoleAccountant && !actor.IsAdmin() {
		return nil, apperrors.NewPermissionDeniedError("only an accountant may credit a fund")
	}
	return s.apply(ctx, domain.MovementIn, currency, amount, nil, description, actor)
}

// Debit implements portssvc.FundWriterSvc.
func (s *fundService) Debit(ctx context.Context, currency string, amount decimal.Decimal, requisitionID *string, description string, actor domain.Actor) (*domain.CurrencyFund, error) {
	return s.apply(ctx, domain.MovementOut, currency, amount, requisitionID, description, actor)
}

func (s *fundService) apply(ctx context.Context, kind domain.MovementType, currency string, amount decimal.Decimal, requisitionID *string, description string, actor domain.Actor) (*domain.CurrencyFund, error) {
	code, err := s.normalizeCurrency(currency)
	if err != nil {
		return nil, err
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	movement := domain.Movement{
		MovementID:    uuid.NewString(),
		Type:          kind,
		Currency:      code,
		Amount:        amount,
		Description:   strings.TrimSpace(description),
		RequisitionID: requisitionID,
		CreatedBy:     actor.UserID,
		CreatedAt:     s.now(),
	}

	fund, err := s.fundRepo.ApplyMovement(ctx, movement)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogWarn(ctx, "Debit refused, insufficient funds", slog.String("currency", code), slog.String("amount", amount.String()))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to apply fund movement", slog.String("currency", code), slog.String("type", string(kind)))
		return nil, fmt.Errorf("failed to apply %s movement on %s: %w", kind, code, err)
	}

	metrics.FundMovementsTotal.WithLabelValues(code, string(kind)).Inc()
	s.LogInfo(ctx, "Fund movement applied",
		slog.String("movement_id", movement.MovementID),
		slog.String("currency", code),
		slog.String("type", string(kind)),
		slog.String("amount", amount.String()),
		slog.String("balance", fund.Balance.String()))
	return fund, nil
}

// GetBalance implements portssvc.FundReaderSvc.
func (s *fundService) GetBalance(ctx context.Context, currency string) (*domain.CurrencyFund, error) {
	code, err := s.normalizeCurrency(currency)
	if err != nil {
		return nil, err
	}
	fund, err := s.fundRepo.FindFund(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to read fund", slog.String("currency", code))
		}
		return nil, fmt.Errorf("failed to read fund %s: %w", code, err)
	}
	return fund, nil
}

// ListFunds implements portssvc.FundReaderSvc.
func (s *fundService) ListFunds(ctx context.Context) ([]domain.CurrencyFund, error) {
	funds, err := s.fundRepo.ListFunds(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list funds")
		return nil, fmt.Errorf("failed to list funds: %w", err)
	}
	return funds, nil
}

// ListMovements implements portssvc.FundReaderSvc.
func (s *fundService) ListMovements(ctx context.Context, currency *string, limit int, nextToken *string) ([]domain.Movement, *string, error) {
	if currency != nil && *currency != "" {
		code, err := s.normalizeCurrency(*currency)
		if err != nil {
			return nil, nil, err
		}
		currency = &code
	} else {
		currency = nil
	}
	if limit <= 0 {
		limit = defaultMovementPageSize
	}
	if limit > maxMovementPageSize {
		limit = maxMovementPageSize
	}
	movements, next, err := s.fundRepo.ListMovements(ctx, currency, limit, nextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list movements")
		}
		return nil, nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, next, nil
}

// Reconcile implements portssvc.FundReaderSvc. A consistent fund satisfies
// balance == sum(entree) - sum(sortie).
func (s *fundService) Reconcile(ctx context.Context, currency string) (*domain.Reconciliation, error) {
	fund, err := s.GetBalance(ctx, currency)
	if err != nil {
		return nil, err
	}
	totalIn, totalOut, err := s.fundRepo.SumMovements(ctx, fund.Currency)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum movements", slog.String("currency", fund.Currency))
		return nil, fmt.Errorf("failed to sum movements for %s: %w", fund.Currency, err)
	}
	net := totalIn.Sub(totalOut)
	rec := &domain.Reconciliation{
		Currency:     fund.Currency,
		Balance:      fund.Balance,
		TotalIn:      totalIn,
		TotalOut:     totalOut,
		MovementsNet: net,
		Consistent:   net.Equal(fund.Balance),
	}
	if !rec.Consistent {
		s.LogWarn(ctx, "Fund balance does not match its movements",
			slog.String("currency", fund.Currency),
			slog.String("balance", fund.Balance.String()),
			slog.String("movements_net", net.String()))
	}
	return rec, nil
}
