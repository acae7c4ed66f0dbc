package api

import "creatorflow-backend-go/internal/models"

// BrandListResponse is the body of GET /brands.
type BrandListResponse struct {
	Brands []*models.Brand `json:"brands"`
	// Total counts every match before the limit is applied.
	Total int `json:"total"`
}

// Pagination describes the page returned by GET /deals.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Skip    int  `json:"skip"`
	HasMore bool `json:"hasMore"`
}

// DealListResponse is the body of GET /deals.
type DealListResponse struct {
	Deals      []*models.DealWithBrand `json:"deals"`
	Pagination Pagination              `json:"pagination"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
