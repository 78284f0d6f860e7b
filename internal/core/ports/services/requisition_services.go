package services

import (
	"context"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
	"github.com/SscSPs/requisition_portal/internal/dto"
)

// RequisitionReaderSvc defines read operations on requisitions.
type RequisitionReaderSvc interface {
	GetRequisition(ctx context.Context, requisitionID string, actor domain.Actor) (*domain.Requisition, error)
	ListRequisitions(ctx context.Context, params dto.ListRequisitionsParams, actor domain.Actor) ([]domain.Requisition, error)
	ListActions(ctx context.Context, requisitionID string, actor domain.Actor) ([]domain.ActionRecord, error)
}

// RequisitionWriterSvc defines the initiator's write operations on requisitions.
type RequisitionWriterSvc interface {
	CreateRequisition(ctx context.Context, req dto.CreateRequisitionRequest, actor domain.Actor) (*domain.Requisition, error)
	UpdateRequisition(ctx context.Context, requisitionID string, req dto.UpdateRequisitionRequest, actor domain.Actor) (*domain.Requisition, error)
}

// WorkflowSvc is the approval state machine.
type WorkflowSvc interface {
	// SubmitAction applies action on behalf of actor and returns the resulting state.
	SubmitAction(ctx context.Context, requisitionID string, req dto.ActionRequest, actor domain.Actor) (*domain.TransitionResult, error)
}

// RequisitionSvcFacade combines all requisition-related service interfaces.
type RequisitionSvcFacade interface {
	RequisitionReaderSvc
	RequisitionWriterSvc
	WorkflowSvc
}
