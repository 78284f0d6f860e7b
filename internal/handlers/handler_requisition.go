package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/requisition_portal/internal/core/ports/services"
	"github.com/SscSPs/requisition_portal/internal/dto"
	"github.com/SscSPs/requisition_portal/internal/middleware"
	"github.com/gin-gonic/gin"
)

// requisitionHandler handles HTTP requests related to requisitions and their workflow.
type requisitionHandler struct {
	requisitionService portssvc.RequisitionSvcFacade
	paymentService     portssvc.PaymentSvc
}

func newRequisitionHandler(rs portssvc.RequisitionSvcFacade, ps portssvc.PaymentSvc) *requisitionHandler {
	return &requisitionHandler{
		requisitionService: rs,
		paymentService:     ps,
	}
}

// registerRequisitionRoutes registers routes related to requisitions.
func registerRequisitionRoutes(rg *gin.RouterGroup, rs portssvc.RequisitionSvcFacade, ps portssvc.PaymentSvc) {
	h := newRequisitionHandler(rs, ps)

	requisitions := rg.Group("/requisitions")
	{
		requisitions.POST("", h.createRequisition)
		requisitions.GET("", h.listRequisitions)
		requisitions.POST("/batch-pay", h.batchPay)
		requisitions.GET("/:id", h.getRequisition)
		requisitions.PUT("/:id", h.updateRequisition)
		requisitions.GET("/:id/actions", h.listActions)
		requisitions.PUT("/:id/action", h.submitAction)
	}
}

// createRequisition godoc
// @Summary Create a requisition
// @Description Creates a requisition at the initiator stage. Line totals are recomputed server side.
// @Tags requisitions
// @Accept  json
// @Produce  json
// @Param   requisition body dto.CreateRequisitionRequest true "Requisition details"
// @Success 201 {object} dto.RequisitionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Role may not create requisitions"
// @Failure 500 {object} dto.ErrorResponse "Failed to create requisition"
// @Security BearerAuth
// @Router /requisitions [post]
func (h *requisitionHandler) createRequisition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateRequisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	requisition, err := h.requisitionService.CreateRequisition(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create requisition")
		return
	}

	logger.Info("Requisition created", slog.String("requisition_id", requisition.RequisitionID), slog.String("number", requisition.Number))
	c.JSON(http.StatusCreated, dto.ToRequisitionResponse(requisition))
}

// listRequisitions godoc
// @Summary List requisitions
// @Description Lists requisitions newest first. Initiators only see their own.
// @Tags requisitions
// @Produce  json
// @Param   niveau query string false "Stage filter"
// @Param   statut query string false "Status filter"
// @Param   initiateur query string false "Initiator filter"
// @Param   limit query int false "Maximum number of results (default 100)"
// @Success 200 {array} dto.RequisitionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list requisitions"
// @Security BearerAuth
// @Router /requisitions [get]
func (h *requisitionHandler) listRequisitions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListRequisitionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	requisitions, err := h.requisitionService.ListRequisitions(c.Request.Context(), params, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to list requisitions")
		return
	}

	c.JSON(http.StatusOK, dto.ToRequisitionResponses(requisitions))
}

// getRequisition godoc
// @Summary Get a requisition by ID
// @Description Retrieves a requisition and its items
// @Tags requisitions
// @Produce  json
// @Param   id path string true "Requisition ID"
// @Success 200 {object} dto.RequisitionResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Requisition not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve requisition"
// @Security BearerAuth
// @Router /requisitions/{id} [get]
func (h *requisitionHandler) getRequisition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requisitionID := c.Param("id")

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	requisition, err := h.requisitionService.GetRequisition(c.Request.Context(), requisitionID, actor)
	if err != nil {
		respondError(c, logger.With(slog.String("requisition_id", requisitionID)), err, "Failed to retrieve requisition")
		return
	}

	c.JSON(http.StatusOK, dto.ToRequisitionResponse(requisition))
}

// updateRequisition godoc
// @Summary Update a requisition
// @Description Replaces the content of a requisition still at the initiator stage
// @Tags requisitions
// @Accept  json
// @Produce  json
// @Param   id path string true "Requisition ID"
// @Param   requisition body dto.UpdateRequisitionRequest true "New content"
// @Success 200 {object} dto.RequisitionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Requisition not found"
// @Failure 409 {object} dto.ErrorResponse "Requisition can no longer be edited"
// @Failure 500 {object} dto.ErrorResponse "Failed to update requisition"
// @Security BearerAuth
// @Router /requisitions/{id} [put]
func (h *requisitionHandler) updateRequisition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requisitionID := c.Param("id")

	var req dto.UpdateRequisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	requisition, err := h.requisitionService.UpdateRequisition(c.Request.Context(), requisitionID, req, actor)
	if err != nil {
		respondError(c, logger.With(slog.String("requisition_id", requisitionID)), err, "Failed to update requisition")
		return
	}

	c.JSON(http.StatusOK, dto.ToRequisitionResponse(requisition))
}

// listActions godoc
// @Summary List the action log of a requisition
// @Tags requisitions
// @Produce  json
// @Param   id path string true "Requisition ID"
// @Success 200 {array} dto.ActionRecordResponse
// @Failure 404 {object} dto.ErrorResponse "Requisition not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to list actions"
// @Security BearerAuth
// @Router /requisitions/{id}/actions [get]
func (h *requisitionHandler) listActions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requisitionID := c.Param("id")

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	records, err := h.requisitionService.ListActions(c.Request.Context(), requisitionID, actor)
	if err != nil {
		respondError(c, logger.With(slog.String("requisition_id", requisitionID)), err, "Failed to list actions")
		return
	}

	c.JSON(http.StatusOK, dto.ToActionRecordResponses(records))
}

// submitAction godoc
// @Summary Act on a requisition
// @Description Approves, rejects, comments, pays or cancels a requisition according to the actor's role and the current stage
// @Tags requisitions
// @Accept  json
// @Produce  json
// @Param   id path string true "Requisition ID"
// @Param   action body dto.ActionRequest true "Action"
// @Success 200 {object} dto.ActionResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown action or missing comment"
// @Failure 403 {object} dto.ErrorResponse "Role may not act at this stage"
// @Failure 404 {object} dto.ErrorResponse "Requisition not found"
// @Failure 409 {object} dto.ErrorResponse "Requisition moved on or is closed"
// @Failure 422 {object} dto.ErrorResponse "Insufficient funds or budget exceeded"
// @Failure 500 {object} dto.ErrorResponse "Failed to apply action"
// @Security BearerAuth
// @Router /requisitions/{id}/action [put]
func (h *requisitionHandler) submitAction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requisitionID := c.Param("id")

	var req dto.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	logger = logger.With(slog.String("requisition_id", requisitionID), slog.String("action", req.Action))

	result, err := h.requisitionService.SubmitAction(c.Request.Context(), requisitionID, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to apply action")
		return
	}

	logger.Info("Action applied", slog.String("stage_after", string(result.Record.StageAfter)), slog.String("status_after", string(result.Record.StatusAfter)))
	c.JSON(http.StatusOK, dto.ToActionResponse(result))
}

// batchPay godoc
// @Summary Pay several requisitions at once
// @Description Debits one movement per currency and marks every requisition paid, or changes nothing
// @Tags requisitions
// @Accept  json
// @Produce  json
// @Param   batch body dto.BatchPayRequest true "Requisition IDs"
// @Success 200 {object} dto.BatchPayResponse
// @Failure 400 {object} dto.ErrorResponse "Empty or duplicated id list"
// @Failure 403 {object} dto.ErrorResponse "Only accountants may pay"
// @Failure 409 {object} dto.ErrorResponse "Some requisitions are not awaiting payment"
// @Failure 422 {object} dto.ErrorResponse "Insufficient funds, per currency"
// @Failure 500 {object} dto.ErrorResponse "Failed to pay batch"
// @Security BearerAuth
// @Router /requisitions/batch-pay [post]
func (h *requisitionHandler) batchPay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BatchPayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	summary, err := h.paymentService.PayBatch(c.Request.Context(), req.RequisitionIDs, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to pay batch")
		return
	}

	logger.Info("Batch paid", slog.Int("count", summary.Count))
	c.JSON(http.StatusOK, dto.ToBatchPayResponse(summary))
}
