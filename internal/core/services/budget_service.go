package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/requisition_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/requisition_portal/internal/core/ports/services"
	"github.com/SscSPs/requisition_portal/internal/dto"
	"github.com/SscSPs/requisition_portal/internal/platform/metrics"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// budgetService checks amounts against monthly envelopes held in the reference currency.
type budgetService struct {
	BaseService
	budgetRepo        portsrepo.BudgetRepositoryFacade
	referenceCurrency string
	rates             map[string]decimal.Decimal
}

// NewBudgetService creates a budget checker. rates maps a currency to the number of
// reference units per unit; the reference currency is added with rate 1.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, referenceCurrency string, rates map[string]decimal.Decimal) portssvc.BudgetSvcFacade {
	table := make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		table[strings.ToUpper(code)] = rate
	}
	ref := strings.ToUpper(referenceCurrency)
	table[ref] = decimal.NewFromInt(1)
	return &budgetService{
		BaseService:       newBaseService(),
		budgetRepo:        budgetRepo,
		referenceCurrency: ref,
		rates:             table,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// Normalize implements portssvc.BudgetCheckerSvc.
func (s *budgetService) Normalize(amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = s.referenceCurrency
	}
	rate, ok := s.rates[code]
	if !ok {
		return decimal.Zero, apperrors.NewValidationError(fmt.Sprintf("no exchange rate for currency %q", currency))
	}
	return amount.Mul(rate).Round(2), nil
}

// Check implements portssvc.BudgetCheckerSvc.
func (s *budgetService) Check(ctx context.Context, category string, amount decimal.Decimal, currency string, month string) (*domain.BudgetCheckResult, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.NewValidationError("category is required")
	}
	if !monthPattern.MatchString(month) {
		return nil, apperrors.NewValidationError("month must be formatted YYYY-MM", "mois: "+month)
	}
	if amount.IsNegative() {
		return nil, apperrors.NewValidationError("amount must not be negative")
	}

	normalized, err := s.Normalize(amount, currency)
	if err != nil {
		return nil, err
	}

	envelope, err := s.budgetRepo.FindEnvelope(ctx, category, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			metrics.BudgetChecksTotal.WithLabelValues("false").Inc()
			s.LogDebug(ctx, "No budget envelope for category", slog.String("category", category), slog.String("month", month))
			return &domain.BudgetCheckResult{
				Allowed:          false,
				Reason:           domain.BudgetReasonCategoryNotFound,
				NormalizedAmount: normalized,
			}, nil
		}
		s.LogError(ctx, err, "Failed to read budget envelope", slog.String("category", category), slog.String("month", month))
		return nil, fmt.Errorf("failed to read budget envelope: %w", err)
	}

	remaining := envelope.Remaining()
	result := &domain.BudgetCheckResult{
		Allowed:          normalized.LessThanOrEqual(remaining),
		NormalizedAmount: normalized,
	}
	if !result.Allowed {
		result.Reason = domain.BudgetReasonExceeded
		result.Details = &domain.BudgetCheckDetails{
			BudgetTotal: envelope.Total,
			Consumed:    envelope.Consumed,
			Remaining:   remaining,
		}
	}
	metrics.BudgetChecksTotal.WithLabelValues(strconv.FormatBool(result.Allowed)).Inc()
	return result, nil
}

// UpsertEnvelope implements portssvc.BudgetSvcFacade.
func (s *budgetService) UpsertEnvelope(ctx context.Context, req dto.BudgetEnvelopeRequest, actor domain.Actor) (*domain.BudgetEnvelope, error) {
	if !actor.IsAdmin() && actor.Role != domain.RoleAccountant {
		return nil, apperrors.NewPermissionDeniedError("only an accountant or an administrator may maintain budget envelopes")
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, apperrors.NewValidationError("category is required")
	}
	if !monthPattern.MatchString(req.Month) {
		return nil, apperrors.NewValidationError("month must be formatted YYYY-MM", "mois: "+req.Month)
	}
	if req.Total.IsNegative() || req.Consumed.IsNegative() {
		return nil, apperrors.NewValidationError("envelope amounts must not be negative")
	}

	envelope := domain.BudgetEnvelope{
		Category:      category,
		Month:         req.Month,
		Total:         req.Total,
		Consumed:      req.Consumed,
		LastUpdatedAt: s.now(),
	}
	if err := s.budgetRepo.UpsertEnvelope(ctx, envelope); err != nil {
		s.LogError(ctx, err, "Failed to save budget envelope", slog.String("category", category), slog.String("month", req.Month))
		return nil, fmt.Errorf("failed to save budget envelope: %w", err)
	}
	s.LogInfo(ctx, "Budget envelope saved", slog.String("category", category), slog.String("month", req.Month), slog.String("total", req.Total.String()))
	return &envelope, nil
}

// ListEnvelopes implements portssvc.BudgetSvcFacade.
func (s *budgetService) ListEnvelopes(ctx context.Context, month string) ([]domain.BudgetEnvelope, error) {
	if !monthPattern.MatchString(month) {
		return nil, apperrors.NewValidationError("month must be formatted YYYY-MM", "mois: "+month)
	}
	envelopes, err := s.budgetRepo.ListEnvelopes(ctx, month)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budget envelopes", slog.String("month", month))
		return nil, fmt.Errorf("failed to list budget envelopes: %w", err)
	}
	return envelopes, nil
}
