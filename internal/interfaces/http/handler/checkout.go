package handler

import (
	appcheckout "github.com/cafepos/backend/internal/application/checkout"
	"github.com/cafepos/backend/internal/domain/checkout"
	"github.com/cafepos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CheckoutHandler drives the three payment flows
type CheckoutHandler struct {
	BaseHandler
	checkoutService *appcheckout.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *appcheckout.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// StageHosted starts the hosted payment element flow and returns the
// correlation id and provider client secret for the payment element.
func (h *CheckoutHandler) StageHosted(c *gin.Context) {
	var req dto.StageHostedCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	staged, err := h.checkoutService.StageHostedCheckout(requestContext(c), sessionID(c), checkout.DeliveryMode(req.DeliveryMode))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.StagedCheckoutResponse{
		CorrelationID: staged.CorrelationID.String(),
		ClientSecret:  staged.ClientSecret,
	})
}

// CompleteHosted finishes a staged hosted flow after the provider round trip
func (h *CheckoutHandler) CompleteHosted(c *gin.Context) {
	correlationID, err := uuid.Parse(c.Param("correlationId"))
	if err != nil {
		h.BadRequest(c, "Invalid correlation id")
		return
	}

	result, err := h.checkoutService.CompleteHostedCheckout(requestContext(c), sessionID(c), correlationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toCheckoutResponse(result))
}

// Terminal completes a sale paid on the physical card terminal
func (h *CheckoutHandler) Terminal(c *gin.Context) {
	var req dto.TerminalCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.checkoutService.CheckoutTerminal(requestContext(c), sessionID(c), checkout.DeliveryMode(req.DeliveryMode), req.Attested)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toCheckoutResponse(result))
}

// Cash completes a cash sale
func (h *CheckoutHandler) Cash(c *gin.Context) {
	var req dto.CashCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.checkoutService.CheckoutCash(requestContext(c), sessionID(c), checkout.DeliveryMode(req.DeliveryMode), req.AmountTendered)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toCheckoutResponse(result))
}

func toCheckoutResponse(result *appcheckout.CheckoutResult) dto.CheckoutResponse {
	resp := dto.CheckoutResponse{
		Sale: dto.ToSaleResponse(*result.Sale),
	}
	if result.Confirmation != nil {
		resp.AttestedOnly = result.Confirmation.AttestedOnly
	}
	if result.Cash != nil {
		resp.AmountTendered = &result.Cash.AmountTendered
		resp.Change = &result.Cash.Change
	}
	return resp
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	co := rg.Group("/checkout")
	co.POST("/hosted", h.StageHosted)
	co.POST("/hosted/:correlationId/complete", h.CompleteHosted)
	co.POST("/terminal", h.Terminal)
	co.POST("/cash", h.Cash)
}
