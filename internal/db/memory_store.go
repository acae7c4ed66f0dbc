package db

import (
	"context"
	"sync"

	"creatorflow-backend-go/internal/models"
)

// MemoryStore keeps everything in process. It backs DB_DRIVER=memory and the
// test suites. A single lock guards all collections, which also makes
// DeleteWithDeals atomic.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[string]*models.User
	brands map[string]*models.Brand
	deals  map[string]*models.Deal
	audit  []models.AuditLog
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]*models.User),
		brands: make(map[string]*models.Brand),
		deals:  make(map[string]*models.Deal),
	}
}

func (s *MemoryStore) Users() UserRepository { return &memoryUserRepository{store: s} }

func (s *MemoryStore) Brands(ownerID string) BrandRepository {
	return &memoryBrandRepository{store: s, ownerID: ownerID}
}

func (s *MemoryStore) Deals(ownerID string) DealRepository {
	return &memoryDealRepository{store: s, ownerID: ownerID}
}

func (s *MemoryStore) Audit() AuditRepository { return &memoryAuditRepository{store: s} }

func (s *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

func (s *MemoryStore) Close() error { return nil }

// AuditLogs returns a copy of the recorded audit entries.
func (s *MemoryStore) AuditLogs() []models.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.AuditLog(nil), s.audit...)
}

type memoryUserRepository struct {
	store *MemoryStore
}

func (r *memoryUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.store.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *memoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.ID]; ok {
		return ErrDuplicate
	}
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return ErrDuplicate
		}
	}
	stored := *user
	r.store.users[user.ID] = &stored
	return nil
}

func (r *memoryUserRepository) UpdatePlan(ctx context.Context, userID string, update PlanUpdate) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	u.Plan = update.Plan
	u.UpdatedAt = update.UpdatedAt
	out := *u
	return &out, nil
}

type memoryBrandRepository struct {
	store   *MemoryStore
	ownerID string
}

// owned returns the brand if it exists and belongs to the owner. Callers hold the lock.
func (r *memoryBrandRepository) owned(brandID string) (*models.Brand, bool) {
	b, ok := r.store.brands[brandID]
	if !ok || b.UserID != r.ownerID {
		return nil, false
	}
	return b, true
}

func (r *memoryBrandRepository) nameTaken(nameKey, exceptID string) bool {
	for _, b := range r.store.brands {
		if b.UserID == r.ownerID && b.NameKey == nameKey && b.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *memoryBrandRepository) Create(ctx context.Context, brand *models.Brand) error {
	if r.ownerID == "" {
		return ErrMissingOwner
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	brand.UserID = r.ownerID
	brand.NameKey = models.BrandNameKey(brand.Name)
	if r.nameTaken(brand.NameKey, "") {
		return ErrDuplicate
	}
	brand.ID = NewID()
	stored := *brand
	r.store.brands[brand.ID] = &stored
	return nil
}

func (r *memoryBrandRepository) GetByID(ctx context.Context, brandID string) (*models.Brand, error) {
	if r.ownerID == "" {
		return nil, ErrMissingOwner
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	b, ok := r.owned(brandID)
	if !ok {
		return nil, ErrNotFound
	}
	out := *b
	return &out, nil
}

func (r *memoryBrandRepository) GetMany(ctx context.Context, ids []string) (map[string]*models.Brand, error) {
	if r.ownerID == "" {
		return nil, ErrMissingOwner
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make(map[string]*models.Brand, len(ids))
	for _, id := range ids {
		if b, ok := r.owned(id); ok {
			cp := *b
			out[id] = &cp
		}
	}
	return out, nil
}

func (r *memoryBrandRepository) List(ctx context.Context, params models.BrandListParams) ([]*models.Brand, int, error) {
	if r.ownerID == "" {
		return nil, 0, ErrMissingOwner
	}
	r.store.mu.RLock()
	var matches []*models.Brand
	for _, b := range r.store.brands {
		if b.UserID == r.ownerID && matchBrand(b, params) {
			cp := *b
			matches = append(matches, &cp)
		}
	}
	r.store.mu.RUnlock()

	sortBrands(matches, params.Sort)
	return page(matches, 0, params.Limit), len(matches), nil
}

func (r *memoryBrandRepository) Update(ctx context.Context, brandID string, update models.BrandUpdate) (*models.Brand, error) {
	if r.ownerID == "" {
		return nil, ErrMissingOwner
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.owned(brandID)
	if !ok {
		return nil, ErrNotFound
	}
	if update.Name != nil && r.nameTaken(models.BrandNameKey(*update.Name), brandID) {
		return nil, ErrDuplicate
	}
	update.Apply(b)
	out := *b
	return &out, nil
}

func (r *memoryBrandRepository) Delete(ctx context.Context, brandID string) error {
	if r.ownerID == "" {
		return ErrMissingOwner
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.owned(brandID); !ok {
		return ErrNotFound
	}
	for _, d := range r.store.deals {
		if d.UserID == r.ownerID && d.BrandID == brandID {
			return ErrInUse
		}
	}
	delete(r.store.brands, brandID)
	return nil
}

func (r *memoryBrandRepository) DeleteWithDeals(ctx context.Context, brandID string) (int, error) {
	if r.ownerID == "" {
		return 0, ErrMissingOwner
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.owned(brandID); !ok {
		return 0, ErrNotFound
	}
	removed := 0
	for id, d := range r.store.deals {
		if d.UserID == r.ownerID && d.BrandID == brandID {
			delete(r.store.deals, id)
			removed++
		}
	}
	delete(r.store.brands, brandID)
	return removed, nil
}

type memoryDealRepository struct {
	store   *MemoryStore
	ownerID string
}

func (r *memoryDealRepository) owned(dealID string) (*models.Deal, bool) {
	d, ok := r.store.deals[dealID]
	if !ok || d.UserID != r.ownerID {
		return nil, false
	}
	return d, true
}

func (r *memoryDealRepository) Create(ctx context.Context, deal *models.Deal) error {
	if r.ownerID == "" {
		return ErrMissingOwner
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	deal.UserID = r.ownerID
	deal.ID = NewID()
	r.store.deals[deal.ID] = deal.Clone()
	return nil
}

func (r *memoryDealRepository) GetByID(ctx context.Context, dealID string) (*models.Deal, error) {
	if r.ownerID == "" {
		return nil, ErrMissingOwner
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	d, ok := r.owned(dealID)
	if !ok {
		return nil, ErrNotFound
	}
	return d.Clone(), nil
}

func (r *memoryDealRepository) List(ctx context.Context, params models.DealListParams) ([]*models.Deal, int, error) {
	if r.ownerID == "" {
		return nil, 0, ErrMissingOwner
	}
	r.store.mu.RLock()
	var matches []*models.Deal
	for _, d := range r.store.deals {
		if d.UserID == r.ownerID && matchDeal(d, params) {
			matches = append(matches, d.Clone())
		}
	}
	r.store.mu.RUnlock()

	sortDeals(matches, params.Sort)
	return page(matches, params.Skip, params.Limit), len(matches), nil
}

func (r *memoryDealRepository) ListAll(ctx context.Context) ([]*models.Deal, error) {
	if r.ownerID == "" {
		return nil, ErrMissingOwner
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*models.Deal
	for _, d := range r.store.deals {
		if d.UserID == r.ownerID {
			out = append(out, d.Clone())
		}
	}
	return out, nil
}

func (r *memoryDealRepository) CountByBrand(ctx context.Context, brandID string) (int, error) {
	if r.ownerID == "" {
		return 0, ErrMissingOwner
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	n := 0
	for _, d := range r.store.deals {
		if d.UserID == r.ownerID && d.BrandID == brandID {
			n++
		}
	}
	return n, nil
}

func (r *memoryDealRepository) Update(ctx context.Context, dealID string, update models.DealUpdate) (*models.Deal, error) {
	if r.ownerID == "" {
		return nil, ErrMissingOwner
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.owned(dealID)
	if !ok {
		return nil, ErrNotFound
	}
	update.Apply(d)
	return d.Clone(), nil
}

func (r *memoryDealRepository) Delete(ctx context.Context, dealID string) error {
	if r.ownerID == "" {
		return ErrMissingOwner
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.owned(dealID); !ok {
		return ErrNotFound
	}
	delete(r.store.deals, dealID)
	return nil
}

type memoryAuditRepository struct {
	store *MemoryStore
}

func (r *memoryAuditRepository) Create(ctx context.Context, logEntry models.AuditLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if logEntry.ID == "" {
		logEntry.ID = NewID()
	}
	r.store.audit = append(r.store.audit, logEntry)
	return nil
}
