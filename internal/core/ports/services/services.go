package services

// ServiceContainer holds every service the HTTP layer and background jobs need.
type ServiceContainer struct {
	Requisition RequisitionSvcFacade
	Fund        FundSvcFacade
	Payment     PaymentSvc
	Budget      BudgetSvcFacade
	Bordereau   BordereauSvcFacade
	Sweep       SweepSvc
}
