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
	"github.com/SscSPs/requisition_portal/internal/core/workflow"
	"github.com/SscSPs/requisition_portal/internal/dto"
)

const (
	requisitionSequence      = "requisition"
	defaultRequisitionLimit  = 100
	requisitionNumberPattern = "REQ-%d-%04d"
)

// requisitionService owns the requisition lifecycle: creation and edits by the
// initiator, and the approval workflow.
type requisitionService struct {
	BaseService
	reqRepo       portsrepo.RequisitionRepositoryFacade
	seqRepo       portsrepo.SequenceRepository
	policy        *workflow.Policy
	budgetSvc     portssvc.BudgetCheckerSvc
	enforceBudget bool
	currencies    map[string]bool
}

// RequisitionServiceOption is a functional option for configuring the requisition service.
type RequisitionServiceOption func(*requisitionService)

// WithBudgetChecker makes analyst approvals consult the budget checker.
func WithBudgetChecker(svc portssvc.BudgetCheckerSvc, enforce bool) RequisitionServiceOption {
	return func(s *requisitionService) {
		s.budgetSvc = svc
		s.enforceBudget = enforce
	}
}

// WithPolicy replaces the default approval policy.
func WithPolicy(p *workflow.Policy) RequisitionServiceOption {
	return func(s *requisitionService) {
		s.policy = p
	}
}

// NewRequisitionService creates the requisition service. currencies lists the
// currencies a requisition may be expressed in.
func NewRequisitionService(reqRepo portsrepo.RequisitionRepositoryFacade, seqRepo portsrepo.SequenceRepository, currencies []string, opts ...RequisitionServiceOption) portssvc.RequisitionSvcFacade {
	known := make(map[string]bool, len(currencies))
	for _, c := range currencies {
		known[strings.ToUpper(c)] = true
	}
	s := &requisitionService{
		BaseService: newBaseService(),
		reqRepo:     reqRepo,
		seqRepo:     seqRepo,
		policy:      workflow.DefaultPolicy(),
		currencies:  known,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.RequisitionSvcFacade = (*requisitionService)(nil)

// buildItems validates request lines and returns them with recomputed totals.
func buildItems(requisitionID string, lines []dto.RequisitionItemRequest) ([]domain.RequisitionItem, decimal.Decimal, error) {
	if len(lines) == 0 {
		return nil, decimal.Zero, apperrors.NewValidationError("a requisition needs at least one item")
	}
	var details []string
	items := make([]domain.RequisitionItem, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line.Description) == "" {
			details = append(details, fmt.Sprintf("items[%d].description: required", i))
		}
		if !line.Quantity.IsPositive() {
			details = append(details, fmt.Sprintf("items[%d].quantite: must be positive", i))
		}
		if line.UnitPrice.IsNegative() {
			details = append(details, fmt.Sprintf("items[%d].prix_unitaire: must not be negative", i))
		}
		items[i] = domain.RequisitionItem{
			ItemID:        uuid.NewString(),
			RequisitionID: requisitionID,
			Description:   strings.TrimSpace(line.Description),
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			Site:          line.Site,
		}
	}
	if len(details) > 0 {
		return nil, decimal.Zero, apperrors.NewValidationError("invalid requisition items", details...)
	}
	total := domain.ComputeLineTotals(items)
	if !total.IsPositive() {
		return nil, decimal.Zero, apperrors.NewValidationError("requisition total must be positive")
	}
	return items, total, nil
}

func (s *requisitionService) currency(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if !s.currencies[c] {
		return "", apperrors.NewValidationError(fmt.Sprintf("unsupported currency %q", code))
	}
	return c, nil
}

// CreateRequisition implements portssvc.RequisitionWriterSvc.
func (s *requisitionService) CreateRequisition(ctx context.Context, req dto.CreateRequisitionRequest, actor domain.Actor) (*domain.Requisition, error) {
	if actor.Role != domain.RoleInitiator && !actor.IsAdmin() {
		return nil, apperrors.NewPermissionDeniedError(fmt.Sprintf("role %q may not create requisitions", actor.Role))
	}
	if strings.TrimSpace(req.Object) == "" || strings.TrimSpace(req.Category) == "" {
		return nil, apperrors.NewValidationError("object and category are required")
	}
	currency, err := s.currency(req.Currency)
	if err != nil {
		return nil, err
	}

	requisitionID := uuid.NewString()
	items, total, err := buildItems(requisitionID, req.Items)
	if err != nil {
		return nil, err
	}

	now := s.now()
	seq, err := s.seqRepo.NextValue(ctx, requisitionSequence, now.Year())
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate requisition number")
		return nil, fmt.Errorf("failed to allocate requisition number: %w", err)
	}

	department := strings.TrimSpace(req.Department)
	if department == "" {
		department = actor.Service
	}

	requisition := domain.Requisition{
		RequisitionID: requisitionID,
		Number:        fmt.Sprintf(requisitionNumberPattern, now.Year(), seq),
		Object:        strings.TrimSpace(req.Object),
		Category:      strings.TrimSpace(req.Category),
		Currency:      currency,
		Amount:        total,
		State:         domain.Submitted(),
		InitiatorID:   actor.UserID,
		Department:    department,
		RespondsTo:    req.RespondsTo,
		Items:         items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.reqRepo.SaveRequisition(ctx, requisition); err != nil {
		s.LogError(ctx, err, "Failed to save requisition", slog.String("requisition_id", requisitionID))
		return nil, fmt.Errorf("failed to save requisition: %w", err)
	}

	s.LogInfo(ctx, "Requisition created",
		slog.String("requisition_id", requisitionID),
		slog.String("number", requisition.Number),
		slog.String("currency", currency),
		slog.String("amount", total.String()))
	return &requisition, nil
}

// GetRequisition implements portssvc.RequisitionReaderSvc. Initiators only see their own requisitions.
func (s *requisitionService) GetRequisition(ctx context.Context, requisitionID string, actor domain.Actor) (*domain.Requisition, error) {
	requisition, err := s.reqRepo.FindRequisitionByID(ctx, requisitionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find requisition", slog.String("requisition_id", requisitionID))
		}
		return nil, fmt.Errorf("failed to find requisition %s: %w", requisitionID, err)
	}
	if actor.Role == domain.RoleInitiator && requisition.InitiatorID != actor.UserID {
		return nil, apperrors.NewNotFoundError("requisition " + requisitionID)
	}
	return requisition, nil
}

// ListRequisitions implements portssvc.RequisitionReaderSvc.
func (s *requisitionService) ListRequisitions(ctx context.Context, params dto.ListRequisitionsParams, actor domain.Actor) ([]domain.Requisition, error) {
	filter := domain.RequisitionFilter{Limit: params.Limit}
	if filter.Limit <= 0 {
		filter.Limit = defaultRequisitionLimit
	}
	if params.Stage != "" {
		stage, err := domain.ParseStage(params.Stage)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.Stage = &stage
	}
	if params.Status != "" {
		status := domain.Status(params.Status)
		filter.Status = &status
	}
	if params.InitiatorID != "" {
		filter.InitiatorID = &params.InitiatorID
	}
	if actor.Role == domain.RoleInitiator {
		own := actor.UserID
		filter.InitiatorID = &own
	}

	requisitions, err := s.reqRepo.ListRequisitions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list requisitions")
		return nil, fmt.Errorf("failed to list requisitions: %w", err)
	}
	return requisitions, nil
}

// ListActions implements portssvc.RequisitionReaderSvc.
func (s *requisitionService) ListActions(ctx context.Context, requisitionID string, actor domain.Actor) ([]domain.ActionRecord, error) {
	if _, err := s.GetRequisition(ctx, requisitionID, actor); err != nil {
		return nil, err
	}
	actions, err := s.reqRepo.ListActions(ctx, requisitionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list requisition actions", slog.String("requisition_id", requisitionID))
		return nil, fmt.Errorf("failed to list actions of %s: %w", requisitionID, err)
	}
	return actions, nil
}

// UpdateRequisition implements portssvc.RequisitionWriterSvc. Only the owning
// initiator (or an administrator) may edit, and only while the requisition is
// back at the initiator stage and not compiled.
func (s *requisitionService) UpdateRequisition(ctx context.Context, requisitionID string, req dto.UpdateRequisitionRequest, actor domain.Actor) (*domain.Requisition, error) {
	current, err := s.GetRequisition(ctx, requisitionID, actor)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && (actor.Role != domain.RoleInitiator || current.InitiatorID != actor.UserID) {
		return nil, apperrors.NewPermissionDeniedError("only the initiator may edit a requisition")
	}
	if current.State.Stage() != domain.StageInitiator {
		return nil, apperrors.NewInvalidTransitionError(fmt.Sprintf("requisition is %s and can no longer be edited", current.State))
	}
	if current.IsCompiled() {
		return nil, apperrors.NewInvalidTransitionError("requisition belongs to a batch document and is frozen")
	}
	if strings.TrimSpace(req.Object) == "" || strings.TrimSpace(req.Category) == "" {
		return nil, apperrors.NewValidationError("object and category are required")
	}
	currency, err := s.currency(req.Currency)
	if err != nil {
		return nil, err
	}
	items, total, err := buildItems(requisitionID, req.Items)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Object = strings.TrimSpace(req.Object)
	updated.Category = strings.TrimSpace(req.Category)
	updated.Currency = currency
	updated.Amount = total
	updated.Items = items
	updated.LastUpdatedAt = s.now()
	updated.LastUpdatedBy = actor.UserID

	if err := s.reqRepo.UpdateRequisitionContent(ctx, updated); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidTransition) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update requisition", slog.String("requisition_id", requisitionID))
		}
		return nil, fmt.Errorf("failed to update requisition %s: %w", requisitionID, err)
	}
	s.LogInfo(ctx, "Requisition updated", slog.String("requisition_id", requisitionID), slog.String("amount", total.String()))
	return &updated, nil
}
