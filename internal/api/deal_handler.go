package api

import (
	"github.com/gin-gonic/gin"

	"creatorflow-backend-go/internal/core"
	"creatorflow-backend-go/internal/middleware"
	"creatorflow-backend-go/internal/models"
	"creatorflow-backend-go/internal/response"
	"creatorflow-backend-go/internal/validation"
)

// DealHandler handles API endpoints related to deals.
type DealHandler struct {
	dealService core.DealService
	validator   *validation.Validator
}

// NewDealHandler creates a new DealHandler.
func NewDealHandler(ds core.DealService, v *validation.Validator) *DealHandler {
	return &DealHandler{dealService: ds, validator: v}
}

// ListDeals handles GET /deals
func (h *DealHandler) ListDeals(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	params := dealListParams(c)

	deals, total, err := h.dealService.ListDeals(c.Request.Context(), userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}
	if deals == nil {
		deals = []*models.DealWithBrand{}
	}
	response.OK(c, DealListResponse{
		Deals: deals,
		Pagination: Pagination{
			Total:   total,
			Limit:   params.Limit,
			Skip:    params.Skip,
			HasMore: params.Skip+len(deals) < total,
		},
	})
}

// Summary handles GET /deals/summary
func (h *DealHandler) Summary(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	summary, err := h.dealService.Summary(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// CreateDeal handles POST /deals
func (h *DealHandler) CreateDeal(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req models.CreateDealRequest
	if err := h.validator.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	deal, err := h.dealService.CreateDeal(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.RecordDealCreated()
	response.Created(c, deal)
}

// GetDeal handles GET /deals/:id
func (h *DealHandler) GetDeal(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	deal, err := h.dealService.GetDeal(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, deal)
}

// UpdateDeal handles PUT /deals/:id
func (h *DealHandler) UpdateDeal(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	dealID, err := core.NormalizeID("deal", c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var req models.UpdateDealRequest
	if err := h.validator.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	deal, err := h.dealService.UpdateDeal(c.Request.Context(), userID, dealID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, deal)
}

// DeleteDeal handles DELETE /deals/:id
func (h *DealHandler) DeleteDeal(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	if err := h.dealService.DeleteDeal(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
