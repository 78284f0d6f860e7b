package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/requisition_portal/internal/core/ports/services"
	"github.com/SscSPs/requisition_portal/internal/dto"
	"github.com/SscSPs/requisition_portal/internal/middleware"
	"github.com/gin-gonic/gin"
)

// compilationHandler exposes batch documents (bordereaux).
type compilationHandler struct {
	bordereauService portssvc.BordereauSvcFacade
}

func newCompilationHandler(bs portssvc.BordereauSvcFacade) *compilationHandler {
	return &compilationHandler{bordereauService: bs}
}

func registerCompilationRoutes(rg *gin.RouterGroup, bs portssvc.BordereauSvcFacade) {
	h := newCompilationHandler(bs)

	compilations := rg.Group("/compilations")
	{
		compilations.POST("", h.compile)
		compilations.GET("", h.listBatches)
		compilations.GET("/:id", h.getBatch)
		compilations.POST("/:id/aligner", h.align)
	}
}

// compile godoc
// @Summary Compile a batch document
// @Description Groups requisitions awaiting payment into a new bordereau
// @Tags compilations
// @Accept  json
// @Produce  json
// @Param   batch body dto.CompileRequest true "Requisition IDs"
// @Success 201 {object} dto.BatchDocumentResponse
// @Failure 400 {object} dto.ErrorResponse "Empty or duplicated id list"
// @Failure 403 {object} dto.ErrorResponse "Only accountants may compile"
// @Failure 409 {object} dto.ErrorResponse "Some requisitions are not eligible"
// @Failure 500 {object} dto.ErrorResponse "Failed to compile batch"
// @Security BearerAuth
// @Router /compilations [post]
func (h *compilationHandler) compile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CompileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	batch, err := h.bordereauService.Compile(c.Request.Context(), req.RequisitionIDs, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to compile batch")
		return
	}

	logger.Info("Batch compiled", slog.String("batch_id", batch.BatchID), slog.String("number", batch.Number))
	c.JSON(http.StatusCreated, dto.ToBatchDocumentResponse(batch))
}

// listBatches godoc
// @Summary List batch documents
// @Tags compilations
// @Produce  json
// @Success 200 {array} dto.BatchDocumentResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to list batches"
// @Security BearerAuth
// @Router /compilations [get]
func (h *compilationHandler) listBatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	batches, err := h.bordereauService.ListBatches(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list batches")
		return
	}
	c.JSON(http.StatusOK, dto.ToBatchDocumentResponses(batches))
}

// getBatch godoc
// @Summary Get a batch document
// @Tags compilations
// @Produce  json
// @Param   id path string true "Batch ID"
// @Success 200 {object} dto.BatchDocumentResponse
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve batch"
// @Security BearerAuth
// @Router /compilations/{id} [get]
func (h *compilationHandler) getBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("id")

	batch, err := h.bordereauService.GetBatch(c.Request.Context(), batchID)
	if err != nil {
		respondError(c, logger.With(slog.String("batch_id", batchID)), err, "Failed to retrieve batch")
		return
	}
	c.JSON(http.StatusOK, dto.ToBatchDocumentResponse(batch))
}

// align godoc
// @Summary Align a batch document
// @Description Marks a created bordereau as aligned, optionally stamping a payment mode on its requisitions
// @Tags compilations
// @Accept  json
// @Produce  json
// @Param   id path string true "Batch ID"
// @Param   align body dto.AlignRequest false "Payment mode"
// @Success 200 {object} dto.BatchDocumentResponse
// @Failure 403 {object} dto.ErrorResponse "Only accountants may align"
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Failure 409 {object} dto.ErrorResponse "Batch already aligned"
// @Failure 500 {object} dto.ErrorResponse "Failed to align batch"
// @Security BearerAuth
// @Router /compilations/{id}/aligner [post]
func (h *compilationHandler) align(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("id")

	var req dto.AlignRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, logger, err)
			return
		}
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	batch, err := h.bordereauService.Align(c.Request.Context(), batchID, req.PaymentMode, actor)
	if err != nil {
		respondError(c, logger.With(slog.String("batch_id", batchID)), err, "Failed to align batch")
		return
	}
	c.JSON(http.StatusOK, dto.ToBatchDocumentResponse(batch))
}
