package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
)

func TestKindAndStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   string
		status int
	}{
		{"permission", apperrors.NewPermissionDeniedError("no"), apperrors.KindPermissionDenied, http.StatusForbidden},
		{"transition", apperrors.NewInvalidTransitionError("closed"), apperrors.KindInvalidTransition, http.StatusConflict},
		{"validation", apperrors.NewValidationError("bad"), apperrors.KindValidation, http.StatusBadRequest},
		{"budget", apperrors.NewBudgetExceededError("over"), apperrors.KindBudgetExceeded, http.StatusUnprocessableEntity},
		{"funds", &apperrors.ShortfallError{}, apperrors.KindInsufficientFunds, http.StatusUnprocessableEntity},
		{"ineligible", &apperrors.IneligibleError{}, apperrors.KindInvalidTransition, http.StatusConflict},
		{"not found wrapped", fmt.Errorf("loading: %w", apperrors.NewNotFoundError("requisition x")), apperrors.KindNotFound, http.StatusNotFound},
		{"duplicate", fmt.Errorf("saving: %w", apperrors.ErrDuplicate), apperrors.KindDuplicate, http.StatusConflict},
		{"internal", apperrors.NewAppError(http.StatusInternalServerError, "db down", errors.New("dial tcp")), apperrors.KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, apperrors.Kind(tt.err))
			assert.Equal(t, tt.status, apperrors.HTTPStatus(tt.err))
		})
	}
	assert.Empty(t, apperrors.Kind(nil))
}

func TestDetails(t *testing.T) {
	shortfall := &apperrors.ShortfallError{Shortfalls: []apperrors.Shortfall{
		{Currency: "CDF", Required: "5.00", Available: "1.00", Missing: "4.00"},
		{Currency: "USD", Required: "110.00", Available: "100.00", Missing: "10.00"},
	}}
	assert.Equal(t, []string{
		"CDF: required 5.00, available 1.00, missing 4.00",
		"USD: required 110.00, available 100.00, missing 10.00",
	}, apperrors.Details(fmt.Errorf("pay: %w", shortfall)))

	ineligible := &apperrors.IneligibleError{}
	ineligible.Add("r2", "not found")
	ineligible.Add("r1", "already paid")
	ineligible.Add("r2", "still not found")
	assert.Equal(t, []string{"r2: still not found", "r1: already paid"}, apperrors.Details(ineligible))
	assert.Contains(t, ineligible.Error(), "invalid transition")

	assert.Equal(t, []string{"montant: -1"}, apperrors.Details(apperrors.NewValidationError("amount", "montant: -1")))
	assert.Nil(t, apperrors.Details(errors.New("plain")))
}
