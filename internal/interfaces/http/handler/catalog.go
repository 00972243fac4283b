package handler

import (
	"github.com/cafepos/backend/internal/domain/checkout"
	"github.com/cafepos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the upstream product catalog to the POS front-ends
type CatalogHandler struct {
	BaseHandler
	catalog checkout.ProductCatalog
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog checkout.ProductCatalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List returns the full catalog with live stock
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]dto.ProductResponse, len(products))
	for i, p := range products {
		resp[i] = dto.ToProductResponse(p)
	}
	h.Success(c, resp)
}

// GetByID returns a single product
func (h *CatalogHandler) GetByID(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToProductResponse(*product))
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/catalog")
	catalog.GET("/products", h.List)
	catalog.GET("/products/:id", h.GetByID)
}
