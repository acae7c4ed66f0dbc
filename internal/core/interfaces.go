package core

import (
	"context"

	"creatorflow-backend-go/internal/models"
)

// UserService defines the interface for user-related operations.
type UserService interface {
	// GetOrCreate retrieves the user for an identity, creating it with default
	// values on first sight. The boolean reports whether it was created.
	GetOrCreate(ctx context.Context, identity models.Identity) (*models.User, bool, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	ChangePlan(ctx context.Context, userID string, req models.ChangePlanRequest) (*models.User, error)
}

// BrandService defines the interface for brand-related operations.
type BrandService interface {
	ListBrands(ctx context.Context, userID string, params models.BrandListParams) ([]*models.Brand, int, error)
	CreateBrand(ctx context.Context, userID string, req models.CreateBrandRequest) (*models.Brand, error)
	GetBrand(ctx context.Context, userID, brandID string) (*models.BrandWithDealCount, error)
	UpdateBrand(ctx context.Context, userID, brandID string, req models.UpdateBrandRequest) (*models.Brand, error)
	// DeleteBrand refuses to remove a brand that still has deals unless
	// deleteDeals is set, in which case the deals go with it. It returns the
	// number of deals removed.
	DeleteBrand(ctx context.Context, userID, brandID string, deleteDeals bool) (int, error)
}

// DealService defines the interface for deal-related operations.
type DealService interface {
	ListDeals(ctx context.Context, userID string, params models.DealListParams) ([]*models.DealWithBrand, int, error)
	CreateDeal(ctx context.Context, userID string, req models.CreateDealRequest) (*models.DealWithBrand, error)
	GetDeal(ctx context.Context, userID, dealID string) (*models.DealWithBrand, error)
	UpdateDeal(ctx context.Context, userID, dealID string, req models.UpdateDealRequest) (*models.DealWithBrand, error)
	DeleteDeal(ctx context.Context, userID, dealID string) error
	Summary(ctx context.Context, userID string) (*models.DealSummary, error)
}

// AuditService defines the interface for audit logging operations.
type AuditService interface {
	CreateAuditLog(ctx context.Context, logEntry models.AuditLog) error
}
