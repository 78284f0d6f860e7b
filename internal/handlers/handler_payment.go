package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/requisition_portal/internal/core/ports/services"
	"github.com/SscSPs/requisition_portal/internal/dto"
	"github.com/SscSPs/requisition_portal/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler exposes the fund ledger.
type paymentHandler struct {
	fundService portssvc.FundSvcFacade
}

func newPaymentHandler(fs portssvc.FundSvcFacade) *paymentHandler {
	return &paymentHandler{fundService: fs}
}

// registerPaymentRoutes registers routes related to the currency funds.
func registerPaymentRoutes(rg *gin.RouterGroup, fs portssvc.FundSvcFacade) {
	h := newPaymentHandler(fs)

	payments := rg.Group("/payments")
	{
		payments.GET("/fonds", h.listFunds)
		payments.GET("/fonds/:devise/reconcile", h.reconcile)
		payments.GET("/mouvements", h.listMovements)
		payments.POST("/ravitaillement", h.credit)
	}
}

// listFunds godoc
// @Summary List currency funds
// @Description Returns the available balance of every currency
// @Tags payments
// @Produce  json
// @Success 200 {array} dto.FundResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to list funds"
// @Security BearerAuth
// @Router /payments/fonds [get]
func (h *paymentHandler) listFunds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	funds, err := h.fundService.ListFunds(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list funds")
		return
	}
	c.JSON(http.StatusOK, dto.ToFundResponses(funds))
}

// reconcile godoc
// @Summary Reconcile a fund with its movements
// @Description Compares the balance with the sum of entree minus sortie movements
// @Tags payments
// @Produce  json
// @Param   devise path string true "Currency code"
// @Success 200 {object} domain.Reconciliation
// @Failure 400 {object} dto.ErrorResponse "Unknown currency"
// @Failure 500 {object} dto.ErrorResponse "Failed to reconcile fund"
// @Security BearerAuth
// @Router /payments/fonds/{devise}/reconcile [get]
func (h *paymentHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currency := strings.ToUpper(c.Param("devise"))

	rec, err := h.fundService.Reconcile(c.Request.Context(), currency)
	if err != nil {
		respondError(c, logger.With(slog.String("currency", currency)), err, "Failed to reconcile fund")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// listMovements godoc
// @Summary List fund movements
// @Description Lists ledger movements newest first with token based pagination
// @Tags payments
// @Produce  json
// @Param   devise query string false "Currency filter"
// @Param   limit query int false "Page size (default 50)"
// @Param   nextToken query string false "Token of the next page"
// @Success 200 {array} dto.MovementResponse
// @Header  200 {string} X-Next-Token "Token of the next page"
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 500 {object} dto.ErrorResponse "Failed to list movements"
// @Security BearerAuth
// @Router /payments/mouvements [get]
func (h *paymentHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	var currency *string
	if params.Currency != "" {
		currency = &params.Currency
	}

	movements, next, err := h.fundService.ListMovements(c.Request.Context(), currency, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, logger, err, "Failed to list movements")
		return
	}

	if next != nil {
		c.Header(dto.NextTokenHeader, *next)
	}
	c.JSON(http.StatusOK, dto.ToMovementResponses(movements))
}

// credit godoc
// @Summary Replenish a fund
// @Description Records an entree movement and increases the balance of the currency
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   credit body dto.CreditRequest true "Currency and amount"
// @Success 200 {object} dto.FundResponse
// @Failure 400 {object} dto.ErrorResponse "Non-positive amount or unknown currency"
// @Failure 403 {object} dto.ErrorResponse "Only accountants may replenish funds"
// @Failure 500 {object} dto.ErrorResponse "Failed to credit fund"
// @Security BearerAuth
// @Router /payments/ravitaillement [post]
func (h *paymentHandler) credit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	fund, err := h.fundService.Credit(c.Request.Context(), req.Currency, req.Amount, req.Description, actor)
	if err != nil {
		respondError(c, logger.With(slog.String("currency", req.Currency)), err, "Failed to credit fund")
		return
	}

	logger.Info("Fund credited", slog.String("currency", fund.Currency), slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusOK, dto.ToFundResponse(fund))
}
