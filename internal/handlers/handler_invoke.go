package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/exchange_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/exchange_ledger/internal/core/ports/services"
	"github.com/SscSPs/exchange_ledger/internal/dto"
	"github.com/SscSPs/exchange_ledger/internal/middleware"
)

// invokeHandler submits caller invocations to the dispatcher.
type invokeHandler struct {
	dispatcher portssvc.DispatcherSvc
}

func newInvokeHandler(d portssvc.DispatcherSvc) *invokeHandler {
	return &invokeHandler{dispatcher: d}
}

func registerInvokeRoutes(rg *gin.RouterGroup, d portssvc.DispatcherSvc) {
	h := newInvokeHandler(d)
	rg.POST("/invoke", h.invoke)
}

// invoke godoc
// @Summary Run a ledger function
// @Description Runs one of createCurrency, releaseCurrency, assignCurrency, lock, unlock, exchange in a single transaction
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   invocation body dto.InvokeRequest true "Function, positional args and caller signature"
// @Success 200 {object} dto.InvokeResponse
// @Failure 400 {object} dto.InvokeResponse "Input validation failure"
// @Failure 422 {object} dto.InvokeResponse "Business rejection"
// @Failure 500 {object} dto.InvokeResponse "Storage fault"
// @Security BearerAuth
// @Router /invoke [post]
func (h *invokeHandler) invoke(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Invoke", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.InvokeResponse{
			Outcome: domain.OutcomeInputValidation,
			Reason:  "Invalid request format: " + err.Error(),
		})
		return
	}

	logger.Info("Received invocation", slog.String("function", req.Function), slog.Int("args", len(req.Args)))

	res := h.dispatcher.Dispatch(c.Request.Context(), req.ToInvocation())
	c.JSON(statusForOutcome(res.Outcome), dto.ToInvokeResponse(res))
}

func statusForOutcome(o domain.Outcome) int {
	switch o {
	case domain.OutcomeOK:
		return http.StatusOK
	case domain.OutcomeInputValidation:
		return http.StatusBadRequest
	case domain.OutcomeBusinessRejection:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
