package handler

import (
	"io"
	"time"

	appcheckout "github.com/cafepos/backend/internal/application/checkout"
	"github.com/cafepos/backend/internal/domain/checkout"
	"github.com/cafepos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CartHandler handles cart operations for the session
type CartHandler struct {
	BaseHandler
	cartService *appcheckout.CartService
	heartbeat   time.Duration
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *appcheckout.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		heartbeat:   30 * time.Second,
	}
}

// Get returns the current cart
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.cartService.View(requestContext(c), sessionID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToCartResponse(cart, false))
}

// AddItem adds a product to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.cartService.AddItem(requestContext(c), sessionID(c), req.ProductID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToCartResponse(cart, false))
}

// UpdateItem sets the quantity of an existing line. Requests beyond stock
// come back clamped with the clamped flag set.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cart, clamped, err := h.cartService.UpdateQuantity(requestContext(c), sessionID(c), c.Param("productId"), req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToCartResponse(cart, clamped))
}

// RemoveItem removes a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart, err := h.cartService.RemoveItem(requestContext(c), sessionID(c), c.Param("productId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToCartResponse(cart, false))
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.Clear(requestContext(c), sessionID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Totals prices the cart under the requested delivery mode
func (h *CartHandler) Totals(c *gin.Context) {
	mode := checkout.DeliveryMode(c.DefaultQuery("delivery", string(checkout.DeliveryModeStore)))

	totals, err := h.cartService.Totals(requestContext(c), sessionID(c), mode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToTotalsResponse(totals))
}

// Events streams cart change notifications as server-sent events so other
// views of the same session can reload.
func (h *CartHandler) Events(c *gin.Context) {
	signals, cancel, err := h.cartService.Subscribe(requestContext(c), sessionID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case _, ok := <-signals:
			if !ok {
				return false
			}
			c.SSEvent("cart-changed", "reload")
			return true
		case <-heartbeat.C:
			c.SSEvent("heartbeat", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	cart.GET("", h.Get)
	cart.DELETE("", h.Clear)
	cart.GET("/totals", h.Totals)
	cart.GET("/events", h.Events)
	cart.POST("/items", h.AddItem)
	cart.PUT("/items/:productId", h.UpdateItem)
	cart.DELETE("/items/:productId", h.RemoveItem)
}
