package handler

import (
	appcheckout "github.com/cafepos/backend/internal/application/checkout"
	"github.com/cafepos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SalesHandler exposes the purchase history of the signed-in user
type SalesHandler struct {
	BaseHandler
	checkoutService *appcheckout.CheckoutService
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(checkoutService *appcheckout.CheckoutService) *SalesHandler {
	return &SalesHandler{checkoutService: checkoutService}
}

// History lists the current user's past sales
func (h *SalesHandler) History(c *gin.Context) {
	sales, err := h.checkoutService.SalesHistory(requestContext(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]dto.SaleResponse, len(sales))
	for i, s := range sales {
		resp[i] = dto.ToSaleResponse(s)
	}
	h.Success(c, resp)
}

// RegisterRoutes registers sales routes
func (h *SalesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	sales.GET("/history", h.History)
}
