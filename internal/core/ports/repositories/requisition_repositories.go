package repositories

import (
	"context"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
)

// RequisitionReader defines read operations for requisition data
type RequisitionReader interface {
	// FindRequisitionByID retrieves a requisition and its items.
	FindRequisitionByID(ctx context.Context, requisitionID string) (*domain.Requisition, error)

	// FindRequisitionsByIDs retrieves several requisitions (without items), keyed by id.
	// Missing ids are simply absent from the map.
	FindRequisitionsByIDs(ctx context.Context, requisitionIDs []string) (map[string]domain.Requisition, error)

	// ListRequisitions retrieves requisitions matching filter, newest first.
	ListRequisitions(ctx context.Context, filter domain.RequisitionFilter) ([]domain.Requisition, error)

	// ListActions retrieves the action log of a requisition in chronological order.
	ListActions(ctx context.Context, requisitionID string) ([]domain.ActionRecord, error)
}

// RequisitionWriter defines write operations for requisition data
type RequisitionWriter interface {
	// SaveRequisition inserts a new requisition with its items.
	SaveRequisition(ctx context.Context, requisition domain.Requisition) error

	// UpdateRequisitionContent replaces the descriptive and monetary fields and the items
	// of a requisition that is still at the initiator stage and not compiled.
	UpdateRequisitionContent(ctx context.Context, requisition domain.Requisition) error

	// ApplyTransition moves a requisition from cmd.Expected to cmd.Next, appends the
	// action record and, when cmd.Debit is set, debits the fund, all in one transaction.
	// Returns apperrors.ErrInvalidTransition when the stored state is no longer cmd.Expected
	// and apperrors.ErrInsufficientFunds when the debit cannot be honored.
	ApplyTransition(ctx context.Context, cmd domain.TransitionCommand) (*domain.Requisition, error)

	// ApplyBatchPayment commits every debit and every transition of plan, or nothing.
	// On any shortfall it returns *apperrors.ShortfallError naming every short currency.
	ApplyBatchPayment(ctx context.Context, plan domain.BatchPaymentPlan) error
}

// RequisitionRepositoryFacade combines all requisition-related repository interfaces
type RequisitionRepositoryFacade interface {
	RequisitionReader
	RequisitionWriter
}
