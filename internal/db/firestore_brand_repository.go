package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"creatorflow-backend-go/internal/models"
)

// firestoreBrandRepository implements BrandRepository for one owner.
type firestoreBrandRepository struct {
	client  *firestore.Client
	ownerID string
}

func (r *firestoreBrandRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(brandsCollection)
}

func (r *firestoreBrandRepository) scoped() firestore.Query {
	return r.collection().Where("userId", "==", r.ownerID)
}

func decodeBrand(doc *firestore.DocumentSnapshot) (*models.Brand, error) {
	var brand models.Brand
	if err := doc.DataTo(&brand); err != nil {
		return nil, fmt.Errorf("failed to decode brand %q: %w", doc.Ref.ID, err)
	}
	brand.ID = doc.Ref.ID
	return &brand, nil
}

// getOwned reads a brand inside tx and hides brands of other owners.
func (r *firestoreBrandRepository) getOwned(tx *firestore.Transaction, brandID string) (*models.Brand, error) {
	snap, err := tx.Get(r.collection().Doc(brandID))
	if err != nil {
		if errors.Is(translateFirestoreError(err), ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	brand, err := decodeBrand(snap)
	if err != nil {
		return nil, err
	}
	if brand.UserID != r.ownerID {
		return nil, ErrNotFound
	}
	return brand, nil
}

func (r *firestoreBrandRepository) nameTaken(tx *firestore.Transaction, nameKey, exceptID string) (bool, error) {
	refs, err := collectRefs(tx.Documents(r.scoped().Where("nameKey", "==", nameKey)))
	if err != nil {
		return false, err
	}
	for _, ref := range refs {
		if ref.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

// Create inserts the brand after checking the owner's names in the same transaction.
func (r *firestoreBrandRepository) Create(ctx context.Context, brand *models.Brand) error {
	if r.ownerID == "" {
		return ErrMissingOwner
	}
	brand.UserID = r.ownerID
	brand.NameKey = models.BrandNameKey(brand.Name)
	brand.ID = NewID()
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		taken, err := r.nameTaken(tx, brand.NameKey, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicate
		}
		return tx.Create(r.collection().Doc(brand.ID), brand)
	})
	if err != nil {
		brand.ID = ""
		if errors.Is(err, ErrDuplicate) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

func (r *firestoreBrandRepository) GetByID(ctx context.Context, brandID string) (*models.Brand, error) {
	if r.ownerID == "" {
		return nil, ErrMissingOwner
	}
	snap, err := r.collection().Doc(brandID).Get(ctx)
	if err != nil {
		if errors.Is(translateFirestoreError(err), ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get brand %q: %w", brandID, err)
	}
	brand, err := decodeBrand(snap)
	if err != nil {
		return nil, err
	}
	if brand.UserID != r.ownerID {
		return nil, ErrNotFound
	}
	return brand, nil
}

func (r *firestoreBrandRepository) GetMany(ctx context.Context, ids []string) (map[string]*models.Brand, error) {
	if r.ownerID == "" {
		return nil, ErrMissingOwner
	}
	out := make(map[string]*models.Brand, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, r.collection().Doc(id))
	}
	snaps, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("failed to get brands: %w", err)
	}
	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		brand, err := decodeBrand(snap)
		if err != nil {
			return nil, err
		}
		if brand.UserID == r.ownerID {
			out[brand.ID] = brand
		}
	}
	return out, nil
}

// List loads the owner's brands (optionally narrowed by platform) and applies
// the substring search, ordering and limit in process. Firestore has no
// case-insensitive contains operator, and a single creator's brand list is small.
func (r *firestoreBrandRepository) List(ctx context.Context, params models.BrandListParams) ([]*models.Brand, int, error) {
	if r.ownerID == "" {
		return nil, 0, ErrMissingOwner
	}
	query := r.scoped()
	if params.Platform != "" {
		query = query.Where("platform", "==", string(params.Platform))
	}
	iter := query.Documents(ctx)
	defer iter.Stop()

	var matches []*models.Brand
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to iterate brands: %w", err)
		}
		brand, err := decodeBrand(doc)
		if err != nil {
			return nil, 0, err
		}
		if matchBrand(brand, params) {
			matches = append(matches, brand)
		}
	}
	sortBrands(matches, params.Sort)
	return page(matches, 0, params.Limit), len(matches), nil
}

func (r *firestoreBrandRepository) Update(ctx context.Context, brandID string, update models.BrandUpdate) (*models.Brand, error) {
	if r.ownerID == "" {
		return nil, ErrMissingOwner
	}
	var updated *models.Brand
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		brand, err := r.getOwned(tx, brandID)
		if err != nil {
			return err
		}
		if update.Name != nil {
			taken, err := r.nameTaken(tx, models.BrandNameKey(*update.Name), brandID)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicate
			}
		}
		update.Apply(brand)
		updated = brand
		return tx.Set(r.collection().Doc(brandID), brand)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update brand %q: %w", brandID, err)
	}
	return updated, nil
}

func (r *firestoreBrandRepository) Delete(ctx context.Context, brandID string) error {
	if r.ownerID == "" {
		return ErrMissingOwner
	}
	deals := r.client.Collection(dealsCollection).
		Where("userId", "==", r.ownerID).
		Where("brandId", "==", brandID).
		Limit(1)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := r.getOwned(tx, brandID); err != nil {
			return err
		}
		refs, err := collectRefs(tx.Documents(deals))
		if err != nil {
			return err
		}
		if len(refs) > 0 {
			return ErrInUse
		}
		return tx.Delete(r.collection().Doc(brandID))
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInUse) {
			return err
		}
		return fmt.Errorf("failed to delete brand %q: %w", brandID, err)
	}
	return nil
}

// DeleteWithDeals deletes the brand and its deals in one transaction.
// Firestore caps a transaction at 500 writes, so a brand with more than 499
// deals fails here instead of being partially removed.
func (r *firestoreBrandRepository) DeleteWithDeals(ctx context.Context, brandID string) (int, error) {
	if r.ownerID == "" {
		return 0, ErrMissingOwner
	}
	deals := r.client.Collection(dealsCollection).
		Where("userId", "==", r.ownerID).
		Where("brandId", "==", brandID)

	var removed int
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		removed = 0
		if _, err := r.getOwned(tx, brandID); err != nil {
			return err
		}
		refs, err := collectRefs(tx.Documents(deals))
		if err != nil {
			return err
		}
		for _, ref := range refs {
			if err := tx.Delete(ref); err != nil {
				return err
			}
		}
		removed = len(refs)
		return tx.Delete(r.collection().Doc(brandID))
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to delete brand %q with deals: %w", brandID, err)
	}
	return removed, nil
}
