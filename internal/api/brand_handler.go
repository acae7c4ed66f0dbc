package api

import (
	"github.com/gin-gonic/gin"

	"creatorflow-backend-go/internal/core"
	"creatorflow-backend-go/internal/middleware"
	"creatorflow-backend-go/internal/models"
	"creatorflow-backend-go/internal/response"
	"creatorflow-backend-go/internal/validation"
)

// BrandHandler handles API endpoints related to brands.
type BrandHandler struct {
	brandService core.BrandService
	validator    *validation.Validator
}

// NewBrandHandler creates a new BrandHandler.
func NewBrandHandler(bs core.BrandService, v *validation.Validator) *BrandHandler {
	return &BrandHandler{brandService: bs, validator: v}
}

// ListBrands handles GET /brands
func (h *BrandHandler) ListBrands(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	brands, total, err := h.brandService.ListBrands(c.Request.Context(), userID, brandListParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if brands == nil {
		brands = []*models.Brand{}
	}
	response.OK(c, BrandListResponse{Brands: brands, Total: total})
}

// CreateBrand handles POST /brands
func (h *BrandHandler) CreateBrand(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req models.CreateBrandRequest
	if err := h.validator.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	brand, err := h.brandService.CreateBrand(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, brand)
}

// GetBrand handles GET /brands/:id
func (h *BrandHandler) GetBrand(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	brand, err := h.brandService.GetBrand(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, brand)
}

// UpdateBrand handles PUT /brands/:id
func (h *BrandHandler) UpdateBrand(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	brandID, err := core.NormalizeID("brand", c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var req models.UpdateBrandRequest
	if err := h.validator.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	brand, err := h.brandService.UpdateBrand(c.Request.Context(), userID, brandID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, brand)
}

// DeleteBrand handles DELETE /brands/:id. Deals are removed along with the
// brand only when deleteDeals is exactly "true".
func (h *BrandHandler) DeleteBrand(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	deleteDeals := c.Query("deleteDeals") == "true"

	removed, err := h.brandService.DeleteBrand(c.Request.Context(), userID, c.Param("id"), deleteDeals)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.RecordCascadeDelete(removed)
	response.NoContent(c)
}
