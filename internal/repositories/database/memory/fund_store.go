package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
	"github.com/SscSPs/requisition_portal/internal/utils/pagination"
)

// checkCovered reports every sortie the funds cannot honor. Caller holds mu.
func (s *Store) checkCovered(movements []domain.Movement) error {
	required := make(map[string]decimal.Decimal)
	var order []string
	for _, m := range movements {
		if _, ok := s.funds[m.Currency]; !ok {
			return apperrors.NewNotFoundError("fund " + m.Currency)
		}
		if m.Type != domain.MovementOut {
			continue
		}
		if _, seen := required[m.Currency]; !seen {
			order = append(order, m.Currency)
			required[m.Currency] = decimal.Zero
		}
		required[m.Currency] = required[m.Currency].Add(m.Amount)
	}
	sort.Strings(order)

	var shortfalls []apperrors.Shortfall
	for _, currency := range order {
		balance := s.funds[currency].Balance
		need := required[currency]
		if balance.LessThan(need) {
			shortfalls = append(shortfalls, apperrors.Shortfall{
				Currency:  currency,
				Required:  need.StringFixed(2),
				Available: balance.StringFixed(2),
				Missing:   need.Sub(balance).StringFixed(2),
			})
		}
	}
	if len(shortfalls) > 0 {
		return &apperrors.ShortfallError{Shortfalls: shortfalls}
	}
	return nil
}

// applyMovementLocked records m and moves the balance. Caller holds mu and has checked coverage.
func (s *Store) applyMovementLocked(m domain.Movement) *domain.CurrencyFund {
	fund := s.funds[m.Currency]
	fund.Balance = fund.Balance.Add(m.Signed())
	fund.Version++
	fund.LastUpdatedAt = m.CreatedAt
	s.movements = append(s.movements, m)
	return fund
}

// ApplyMovement implements portsrepo.FundWriter.
func (s *Store) ApplyMovement(_ context.Context, movement domain.Movement) (*domain.CurrencyFund, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkCovered([]domain.Movement{movement}); err != nil {
		return nil, err
	}
	fund := *s.applyMovementLocked(movement)
	return &fund, nil
}

// FindFund implements portsrepo.FundReader.
func (s *Store) FindFund(_ context.Context, currency string) (*domain.CurrencyFund, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fund, ok := s.funds[currency]
	if !ok {
		return nil, apperrors.NewNotFoundError("fund " + currency)
	}
	c := *fund
	return &c, nil
}

// ListFunds implements portsrepo.FundReader.
func (s *Store) ListFunds(_ context.Context) ([]domain.CurrencyFund, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CurrencyFund, 0, len(s.funds))
	for _, f := range s.funds {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out, nil
}

// ListMovements implements portsrepo.FundReader.
func (s *Store) ListMovements(_ context.Context, currency *string, limit int, nextToken *string) ([]domain.Movement, *string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := make([]domain.Movement, 0, len(s.movements))
	for _, m := range s.movements {
		if currency == nil || m.Currency == *currency {
			selected = append(selected, m)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		if !selected[i].CreatedAt.Equal(selected[j].CreatedAt) {
			return selected[i].CreatedAt.After(selected[j].CreatedAt)
		}
		return selected[i].MovementID > selected[j].MovementID
	})

	start := 0
	if nextToken != nil && *nextToken != "" {
		after, afterID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		start = len(selected)
		for i, m := range selected {
			if m.CreatedAt.Before(after) || (m.CreatedAt.Equal(after) && m.MovementID < afterID) {
				start = i
				break
			}
		}
	}

	end := len(selected)
	var next *string
	if limit > 0 && start+limit < end {
		end = start + limit
		last := selected[end-1]
		token := pagination.EncodeToken(last.CreatedAt, last.MovementID)
		next = &token
	}
	return selected[start:end], next, nil
}

// SumMovements implements portsrepo.FundReader.
func (s *Store) SumMovements(_ context.Context, currency string) (decimal.Decimal, decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	totalIn, totalOut := decimal.Zero, decimal.Zero
	for _, m := range s.movements {
		if m.Currency != currency {
			continue
		}
		if m.Type == domain.MovementIn {
			totalIn = totalIn.Add(m.Amount)
		} else {
			totalOut = totalOut.Add(m.Amount)
		}
	}
	return totalIn, totalOut, nil
}
