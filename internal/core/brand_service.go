package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"creatorflow-backend-go/internal/db"
	"creatorflow-backend-go/internal/models"
)

// ErrBrandNotFound is returned when a brand does not exist or belongs to someone else.
var ErrBrandNotFound = errors.New("brand not found")

// BrandHasDealsError is returned when deleting a brand that still has deals
// without asking for them to be deleted too.
type BrandHasDealsError struct {
	Count int
}

func (e *BrandHasDealsError) Error() string {
	return fmt.Sprintf("Brand has %d associated deal(s). Set deleteDeals=true to also delete them.", e.Count)
}

// brandService implements the BrandService interface.
type brandService struct {
	store  db.Store
	audit  AuditService
	logger *zap.Logger
	now    func() time.Time
}

// NewBrandService creates a new BrandService instance.
func NewBrandService(store db.Store, audit AuditService, logger *zap.Logger) BrandService {
	return &brandService{store: store, audit: audit, logger: logger, now: utcNow}
}

func (s *brandService) ListBrands(ctx context.Context, userID string, params models.BrandListParams) ([]*models.Brand, int, error) {
	if err := requireUser(userID); err != nil {
		return nil, 0, err
	}
	params.Normalize()
	brands, total, err := s.store.Brands(userID).List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list brands for user '%s': %w", userID, err)
	}
	return brands, total, nil
}

func (s *brandService) CreateBrand(ctx context.Context, userID string, req models.CreateBrandRequest) (*models.Brand, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	now := s.now()
	brand := &models.Brand{
		Name:      req.Name,
		Platform:  req.Platform,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.InstagramHandle != nil {
		brand.InstagramHandle = *req.InstagramHandle
	}

	if err := s.store.Brands(userID).Create(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to create brand for user '%s': %w", userID, err)
	}

	recordAudit(ctx, s.audit, s.logger, models.AuditLog{
		UserID:     userID,
		Action:     models.ActionBrandCreate,
		TargetType: models.TargetBrand,
		TargetID:   brand.ID,
		Timestamp:  now,
		Details:    map[string]interface{}{"name": brand.Name},
	})
	return brand, nil
}

// GetBrand returns the brand with the number of the caller's deals that reference it.
func (s *brandService) GetBrand(ctx context.Context, userID, brandID string) (*models.BrandWithDealCount, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	brandID, err := NormalizeID("brand", brandID)
	if err != nil {
		return nil, err
	}
	brand, err := s.store.Brands(userID).GetByID(ctx, brandID)
	if err != nil {
		return nil, s.brandError(brandID, err)
	}
	count, err := s.store.Deals(userID).CountByBrand(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to count deals for brand '%s': %w", brandID, err)
	}
	return &models.BrandWithDealCount{Brand: *brand, DealCount: count}, nil
}

func (s *brandService) UpdateBrand(ctx context.Context, userID, brandID string, req models.UpdateBrandRequest) (*models.Brand, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	brandID, err := NormalizeID("brand", brandID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	update := models.BrandUpdate{
		Name:            req.Name,
		InstagramHandle: req.InstagramHandle,
		Platform:        req.Platform,
		UpdatedAt:       now,
	}
	brand, err := s.store.Brands(userID).Update(ctx, brandID, update)
	if err != nil {
		return nil, s.brandError(brandID, err)
	}

	recordAudit(ctx, s.audit, s.logger, models.AuditLog{
		UserID:     userID,
		Action:     models.ActionBrandUpdate,
		TargetType: models.TargetBrand,
		TargetID:   brandID,
		Timestamp:  now,
	})
	return brand, nil
}

// DeleteBrand checks ownership first so a missing brand is never reported as
// having deals.
func (s *brandService) DeleteBrand(ctx context.Context, userID, brandID string, deleteDeals bool) (int, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}
	brandID, err := NormalizeID("brand", brandID)
	if err != nil {
		return 0, err
	}
	brands := s.store.Brands(userID)
	if _, err := brands.GetByID(ctx, brandID); err != nil {
		return 0, s.brandError(brandID, err)
	}

	count, err := s.store.Deals(userID).CountByBrand(ctx, brandID)
	if err != nil {
		return 0, fmt.Errorf("failed to count deals for brand '%s': %w", brandID, err)
	}
	if count > 0 && !deleteDeals {
		return 0, &BrandHasDealsError{Count: count}
	}

	removed := 0
	if deleteDeals {
		removed, err = brands.DeleteWithDeals(ctx, brandID)
	} else {
		err = brands.Delete(ctx, brandID)
	}
	if errors.Is(err, db.ErrInUse) {
		// A deal was attached after the count above.
		count, _ = s.store.Deals(userID).CountByBrand(ctx, brandID)
		return 0, &BrandHasDealsError{Count: max(count, 1)}
	}
	if err != nil {
		return 0, s.brandError(brandID, err)
	}

	s.logger.Info("Deleted brand",
		zap.String("userId", userID),
		zap.String("brandId", brandID),
		zap.Int("dealsDeleted", removed),
	)
	recordAudit(ctx, s.audit, s.logger, models.AuditLog{
		UserID:     userID,
		Action:     models.ActionBrandDelete,
		TargetType: models.TargetBrand,
		TargetID:   brandID,
		Timestamp:  s.now(),
		Details:    map[string]interface{}{"dealsDeleted": removed},
	})
	return removed, nil
}

func (s *brandService) brandError(brandID string, err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("%w: brand with ID '%s'", ErrBrandNotFound, brandID)
	}
	return fmt.Errorf("brand '%s': %w", brandID, err)
}
