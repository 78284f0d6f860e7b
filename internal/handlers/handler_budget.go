package handlers

import (
	"net/http"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
	portssvc "github.com/SscSPs/requisition_portal/internal/core/ports/services"
	"github.com/SscSPs/requisition_portal/internal/dto"
	"github.com/SscSPs/requisition_portal/internal/middleware"
	"github.com/gin-gonic/gin"
)

type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: bs}
}

func registerBudgetRoutes(rg *gin.RouterGroup, bs portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(bs)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("/check", h.check)
		budgets.GET("/envelopes", h.listEnvelopes)
		budgets.PUT("/envelopes", h.upsertEnvelope)
	}
}

type listEnvelopesQuery struct {
	Month string `form:"mois" binding:"required,month"`
}

// check godoc
// @Summary Check an amount against a monthly budget envelope
// @Description Advisory and read-only. The amount is normalized to the reference currency first.
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   check body dto.BudgetCheckRequest true "Category, amount and month"
// @Success 200 {object} domain.BudgetCheckResult
// @Failure 400 {object} dto.ErrorResponse "Invalid month, amount or currency"
// @Failure 500 {object} dto.ErrorResponse "Failed to check budget"
// @Security BearerAuth
// @Router /budgets/check [post]
func (h *budgetHandler) check(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BudgetCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	result, err := h.budgetService.Check(c.Request.Context(), req.Description, req.Amount, req.Currency, req.Month)
	if err != nil {
		respondError(c, logger, err, "Failed to check budget")
		return
	}
	c.JSON(http.StatusOK, result)
}

// listEnvelopes godoc
// @Summary List the budget envelopes of a month
// @Tags budgets
// @Produce  json
// @Param   mois query string true "Month (YYYY-MM)"
// @Success 200 {array} dto.BudgetEnvelopeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid month"
// @Failure 500 {object} dto.ErrorResponse "Failed to list envelopes"
// @Security BearerAuth
// @Router /budgets/envelopes [get]
func (h *budgetHandler) listEnvelopes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var q listEnvelopesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, logger, err)
		return
	}

	envelopes, err := h.budgetService.ListEnvelopes(c.Request.Context(), q.Month)
	if err != nil {
		respondError(c, logger, err, "Failed to list envelopes")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetEnvelopeResponses(envelopes))
}

// upsertEnvelope godoc
// @Summary Create or replace a budget envelope
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   envelope body dto.BudgetEnvelopeRequest true "Envelope"
// @Success 200 {object} dto.BudgetEnvelopeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid envelope"
// @Failure 403 {object} dto.ErrorResponse "Only admins and accountants may edit envelopes"
// @Failure 500 {object} dto.ErrorResponse "Failed to save envelope"
// @Security BearerAuth
// @Router /budgets/envelopes [put]
func (h *budgetHandler) upsertEnvelope(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BudgetEnvelopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	envelope, err := h.budgetService.UpsertEnvelope(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to save envelope")
		return
	}

	logger.Info("Budget envelope saved")
	c.JSON(http.StatusOK, dto.ToBudgetEnvelopeResponses([]domain.BudgetEnvelope{*envelope})[0])
}
