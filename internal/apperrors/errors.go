package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is authenticated but may not touch the resource.
var ErrForbidden = errors.New("forbidden")

// ErrPermissionDenied indicates the actor's role may not act on the requisition's current stage.
var ErrPermissionDenied = errors.New("permission denied")

// ErrInvalidTransition indicates the action is not legal for the current stage and status,
// including the case where the stored state changed under the caller.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrBudgetExceeded is raised by the budget checker when an amount does not fit the envelope.
var ErrBudgetExceeded = errors.New("budget exceeded")

// ErrInsufficientFunds indicates a ledger debit cannot be honored by the fund balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Machine readable error kinds returned to API clients.
const (
	KindPermissionDenied  = "permission_denied"
	KindInvalidTransition = "invalid_transition"
	KindValidation        = "validation_error"
	KindBudgetExceeded    = "budget_exceeded"
	KindInsufficientFunds = "insufficient_funds"
	KindNotFound          = "not_found"
	KindDuplicate         = "duplicate"
	KindForbidden         = "forbidden"
	KindInternal          = "internal_error"
)

// AppError carries an HTTP status code, a message and optional details on top of a wrapped error.
type AppError struct {
	Code    int
	Message string
	Err     error
	Details []string
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound with a message.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError wraps ErrValidation with a message.
func NewValidationError(message string, details ...string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation, Details: details}
}

// NewPermissionDeniedError wraps ErrPermissionDenied with a message.
func NewPermissionDeniedError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message, Err: ErrPermissionDenied}
}

// NewInvalidTransitionError wraps ErrInvalidTransition with a message.
func NewInvalidTransitionError(message string, details ...string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrInvalidTransition, Details: details}
}

// NewBudgetExceededError wraps ErrBudgetExceeded with a message.
func NewBudgetExceededError(message string, details ...string) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Message: message, Err: ErrBudgetExceeded, Details: details}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Shortfall describes how much a currency fund is missing to cover a debit.
type Shortfall struct {
	Currency  string
	Required  string
	Available string
	Missing   string
}

// ShortfallError reports every currency that could not cover its share of a payment.
type ShortfallError struct {
	Shortfalls []Shortfall
}

func (e *ShortfallError) Error() string {
	return ErrInsufficientFunds.Error() + ": " + strings.Join(e.details(), "; ")
}

func (e *ShortfallError) Unwrap() error {
	return ErrInsufficientFunds
}

func (e *ShortfallError) details() []string {
	out := make([]string, len(e.Shortfalls))
	for i, s := range e.Shortfalls {
		out[i] = fmt.Sprintf("%s: required %s, available %s, missing %s", s.Currency, s.Required, s.Available, s.Missing)
	}
	return out
}

// IneligibleError lists, per requisition id, why it cannot take part in an operation.
type IneligibleError struct {
	Reasons map[string]string
	Order   []string
}

// Add records a reason for id, keeping insertion order for stable output.
func (e *IneligibleError) Add(id, reason string) {
	if e.Reasons == nil {
		e.Reasons = make(map[string]string)
	}
	if _, ok := e.Reasons[id]; !ok {
		e.Order = append(e.Order, id)
	}
	e.Reasons[id] = reason
}

// Empty reports whether no reason was recorded.
func (e *IneligibleError) Empty() bool {
	return len(e.Order) == 0
}

func (e *IneligibleError) Error() string {
	return ErrInvalidTransition.Error() + ": " + strings.Join(e.details(), "; ")
}

func (e *IneligibleError) Unwrap() error {
	return ErrInvalidTransition
}

func (e *IneligibleError) details() []string {
	out := make([]string, len(e.Order))
	for i, id := range e.Order {
		out[i] = id + ": " + e.Reasons[id]
	}
	return out
}

// Kind maps an error to its machine readable kind.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrBudgetExceeded):
		return KindBudgetExceeded
	case errors.Is(err, ErrInsufficientFunds):
		return KindInsufficientFunds
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicate):
		return KindDuplicate
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	default:
		return KindInternal
	}
}

// HTTPStatus maps an error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch Kind(err) {
	case KindPermissionDenied, KindForbidden:
		return http.StatusForbidden
	case KindInvalidTransition, KindDuplicate:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	case KindBudgetExceeded, KindInsufficientFunds:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Details extracts the human readable detail list carried by err, if any.
func Details(err error) []string {
	var shortfall *ShortfallError
	if errors.As(err, &shortfall) {
		return shortfall.details()
	}
	var ineligible *IneligibleError
	if errors.As(err, &ineligible) {
		return ineligible.details()
	}
	var appErr *AppError
	if errors.As(err, &appErr) && len(appErr.Details) > 0 {
		return appErr.Details
	}
	return nil
}
