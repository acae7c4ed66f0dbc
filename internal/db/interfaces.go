package db

import (
	"context"
	"errors"
	"time"

	"creatorflow-backend-go/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a record does not exist or is not owned by
	// the scoped user.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write would break a uniqueness rule.
	ErrDuplicate = errors.New("duplicate record")
	// ErrMissingOwner is returned by scoped repositories built without an owner.
	ErrMissingOwner = errors.New("owner id is required")
	// ErrInUse is returned when deleting a record that others still reference.
	ErrInUse = errors.New("record still referenced")
)

// NewID returns a fresh 24 character hex identifier.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// Store is the entry point to persistence. Brand and deal repositories are
// always bound to one owner; nothing outside this package can query them
// unscoped.
type Store interface {
	Users() UserRepository
	Brands(ownerID string) BrandRepository
	Deals(ownerID string) DealRepository
	Audit() AuditRepository
	Ping(ctx context.Context) error
	Close() error
}

// UserRepository defines the interface for user data storage operations.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	// Create inserts a user keyed by user.ID. It returns ErrDuplicate when
	// the id or the email is already taken.
	Create(ctx context.Context, user *models.User) error
	UpdatePlan(ctx context.Context, userID string, update PlanUpdate) (*models.User, error)
}

// PlanUpdate is the only mutation allowed on a user after creation.
type PlanUpdate struct {
	Plan      models.Plan
	UpdatedAt time.Time
}

// BrandRepository defines brand storage operations for a single owner.
type BrandRepository interface {
	// Create assigns brand.ID and brand.UserID and inserts it. A name that
	// collides case-insensitively with another of the owner's brands yields
	// ErrDuplicate.
	Create(ctx context.Context, brand *models.Brand) error
	GetByID(ctx context.Context, brandID string) (*models.Brand, error)
	// GetMany returns the owner's brands among ids, keyed by id. Missing ids
	// are left out.
	GetMany(ctx context.Context, ids []string) (map[string]*models.Brand, error)
	// List returns one page of matches plus the number of matches overall.
	List(ctx context.Context, params models.BrandListParams) ([]*models.Brand, int, error)
	Update(ctx context.Context, brandID string, update models.BrandUpdate) (*models.Brand, error)
	// Delete removes the brand only while none of the owner's deals
	// reference it, otherwise it returns ErrInUse. The check and the delete
	// happen in one atomic unit.
	Delete(ctx context.Context, brandID string) error
	// DeleteWithDeals removes the brand and every deal of the owner that
	// references it in one atomic unit, returning the number of deals removed.
	DeleteWithDeals(ctx context.Context, brandID string) (int, error)
}

// DealRepository defines deal storage operations for a single owner.
type DealRepository interface {
	Create(ctx context.Context, deal *models.Deal) error
	GetByID(ctx context.Context, dealID string) (*models.Deal, error)
	List(ctx context.Context, params models.DealListParams) ([]*models.Deal, int, error)
	// ListAll returns every deal of the owner, unordered.
	ListAll(ctx context.Context) ([]*models.Deal, error)
	CountByBrand(ctx context.Context, brandID string) (int, error)
	Update(ctx context.Context, dealID string, update models.DealUpdate) (*models.Deal, error)
	Delete(ctx context.Context, dealID string) error
}

// AuditRepository defines the interface for audit log data storage operations.
type AuditRepository interface {
	Create(ctx context.Context, logEntry models.AuditLog) error
}
