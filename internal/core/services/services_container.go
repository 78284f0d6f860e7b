package services

import (
	"github.com/SscSPs/requisition_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/requisition_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/requisition_portal/internal/core/ports/services"
	"github.com/SscSPs/requisition_portal/internal/core/workflow"
	"github.com/SscSPs/requisition_portal/internal/platform/config"
)

// PolicyFromConfig builds the approval policy, applying the per-stage reject outcome.
func PolicyFromConfig(cfg *config.Config) *workflow.Policy {
	var toCorrect []domain.Stage
	for _, name := range cfg.RejectToCorrectStages {
		if stage, err := domain.ParseStage(name); err == nil {
			toCorrect = append(toCorrect, stage)
		}
	}
	return workflow.NewPolicy(toCorrect...)
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	policy := PolicyFromConfig(cfg)
	container := &portssvc.ServiceContainer{}

	container.Budget = NewBudgetService(repos.BudgetRepo, cfg.ReferenceCurrency, cfg.ExchangeRates)
	container.Fund = NewFundService(repos.FundRepo, cfg.Currencies())
	container.Requisition = NewRequisitionService(
		repos.RequisitionRepo,
		repos.SequenceRepo,
		cfg.Currencies(),
		WithPolicy(policy),
		WithBudgetChecker(container.Budget, cfg.BudgetEnforce),
	)
	container.Payment = NewPaymentService(repos.RequisitionRepo, policy)
	container.Bordereau = NewBordereauService(repos.BordereauRepo, repos.RequisitionRepo, repos.SequenceRepo)
	container.Sweep = NewSweepService(repos.RequisitionRepo, policy, cfg.SweepStages, cfg.StageTimeout)

	return container
}
