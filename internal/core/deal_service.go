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

var (
	// ErrDealNotFound is returned when a deal does not exist or belongs to someone else.
	ErrDealNotFound = errors.New("deal not found")
	// ErrBrandNotOwned is returned when a deal references a brand the caller does not own.
	ErrBrandNotOwned = errors.New("brand not found or does not belong to you")
)

// dealService implements the DealService interface.
type dealService struct {
	store  db.Store
	audit  AuditService
	logger *zap.Logger
	now    func() time.Time
}

// NewDealService creates a new DealService instance.
func NewDealService(store db.Store, audit AuditService, logger *zap.Logger) DealService {
	return &dealService{store: store, audit: audit, logger: logger, now: utcNow}
}

func (s *dealService) ListDeals(ctx context.Context, userID string, params models.DealListParams) ([]*models.DealWithBrand, int, error) {
	if err := requireUser(userID); err != nil {
		return nil, 0, err
	}
	params.Normalize()
	deals, total, err := s.store.Deals(userID).List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list deals for user '%s': %w", userID, err)
	}
	expanded, err := s.expand(ctx, userID, deals)
	if err != nil {
		return nil, 0, err
	}
	return expanded, total, nil
}

func (s *dealService) CreateDeal(ctx context.Context, userID string, req models.CreateDealRequest) (*models.DealWithBrand, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	brand, err := s.ownedBrand(ctx, userID, req.BrandID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	deal := &models.Deal{
		BrandID:       brand.ID,
		DealName:      req.DealName,
		Platform:      req.Platform,
		Deliverables:  models.ToDeliverables(req.Deliverables),
		PaymentStatus: req.PaymentStatus,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.DueDate != nil {
		deal.DueDate = req.DueDate.Time()
	}
	if req.PaymentAmount != nil {
		deal.PaymentAmount = *req.PaymentAmount
	}
	if deal.PaymentStatus == "" {
		deal.PaymentStatus = models.PaymentPending
	}
	if req.Notes != nil {
		deal.Notes = *req.Notes
	}

	if err := s.store.Deals(userID).Create(ctx, deal); err != nil {
		return nil, fmt.Errorf("failed to create deal for user '%s': %w", userID, err)
	}

	recordAudit(ctx, s.audit, s.logger, models.AuditLog{
		UserID:     userID,
		Action:     models.ActionDealCreate,
		TargetType: models.TargetDeal,
		TargetID:   deal.ID,
		Timestamp:  now,
		Details:    map[string]interface{}{"brandId": brand.ID},
	})
	return &models.DealWithBrand{Deal: *deal, Brand: brand.Summary()}, nil
}

func (s *dealService) GetDeal(ctx context.Context, userID, dealID string) (*models.DealWithBrand, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	dealID, err := NormalizeID("deal", dealID)
	if err != nil {
		return nil, err
	}
	deal, err := s.store.Deals(userID).GetByID(ctx, dealID)
	if err != nil {
		return nil, dealError(dealID, err)
	}
	return s.expandOne(ctx, userID, deal)
}

// UpdateDeal verifies brand ownership before touching the deal whenever the
// update names a brand.
func (s *dealService) UpdateDeal(ctx context.Context, userID, dealID string, req models.UpdateDealRequest) (*models.DealWithBrand, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	dealID, err := NormalizeID("deal", dealID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	update := models.DealUpdate{
		DealName:      req.DealName,
		Platform:      req.Platform,
		PaymentAmount: req.PaymentAmount,
		PaymentStatus: req.PaymentStatus,
		Notes:         req.Notes,
		UpdatedAt:     now,
	}
	if req.BrandID != nil {
		brand, err := s.ownedBrand(ctx, userID, *req.BrandID)
		if err != nil {
			return nil, err
		}
		update.BrandID = &brand.ID
	}
	if req.Deliverables != nil {
		deliverables := models.ToDeliverables(*req.Deliverables)
		update.Deliverables = &deliverables
	}
	if req.DueDate != nil {
		due := req.DueDate.Time()
		update.DueDate = &due
	}

	deal, err := s.store.Deals(userID).Update(ctx, dealID, update)
	if err != nil {
		return nil, dealError(dealID, err)
	}

	recordAudit(ctx, s.audit, s.logger, models.AuditLog{
		UserID:     userID,
		Action:     models.ActionDealUpdate,
		TargetType: models.TargetDeal,
		TargetID:   dealID,
		Timestamp:  now,
	})
	return s.expandOne(ctx, userID, deal)
}

func (s *dealService) DeleteDeal(ctx context.Context, userID, dealID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	dealID, err := NormalizeID("deal", dealID)
	if err != nil {
		return err
	}
	if err := s.store.Deals(userID).Delete(ctx, dealID); err != nil {
		return dealError(dealID, err)
	}
	recordAudit(ctx, s.audit, s.logger, models.AuditLog{
		UserID:     userID,
		Action:     models.ActionDealDelete,
		TargetType: models.TargetDeal,
		TargetID:   dealID,
		Timestamp:  s.now(),
	})
	return nil
}

func (s *dealService) Summary(ctx context.Context, userID string) (*models.DealSummary, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	deals, err := s.store.Deals(userID).ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deals for user '%s': %w", userID, err)
	}
	return models.Summarize(deals, s.now()), nil
}

// ownedBrand resolves brandID to one of the caller's brands. Missing and
// foreign brands both come back as ErrBrandNotOwned.
func (s *dealService) ownedBrand(ctx context.Context, userID, brandID string) (*models.Brand, error) {
	brandID, err := NormalizeID("brand", brandID)
	if err != nil {
		return nil, err
	}
	brand, err := s.store.Brands(userID).GetByID(ctx, brandID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: brand '%s'", ErrBrandNotOwned, brandID)
		}
		return nil, fmt.Errorf("failed to verify brand '%s': %w", brandID, err)
	}
	return brand, nil
}

func (s *dealService) expandOne(ctx context.Context, userID string, deal *models.Deal) (*models.DealWithBrand, error) {
	expanded, err := s.expand(ctx, userID, []*models.Deal{deal})
	if err != nil {
		return nil, err
	}
	return expanded[0], nil
}

// expand attaches brand summaries, fetching each referenced brand once.
func (s *dealService) expand(ctx context.Context, userID string, deals []*models.Deal) ([]*models.DealWithBrand, error) {
	ids := make([]string, 0, len(deals))
	seen := make(map[string]bool, len(deals))
	for _, d := range deals {
		if !seen[d.BrandID] {
			seen[d.BrandID] = true
			ids = append(ids, d.BrandID)
		}
	}
	brands, err := s.store.Brands(userID).GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load brands for deals: %w", err)
	}
	out := make([]*models.DealWithBrand, 0, len(deals))
	for _, d := range deals {
		item := &models.DealWithBrand{Deal: *d}
		if b, ok := brands[d.BrandID]; ok {
			item.Brand = b.Summary()
		}
		out = append(out, item)
	}
	return out, nil
}

func dealError(dealID string, err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("%w: deal with ID '%s'", ErrDealNotFound, dealID)
	}
	return fmt.Errorf("deal '%s': %w", dealID, err)
}
