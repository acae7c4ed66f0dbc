package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"

	"creatorflow-backend-go/internal/models"
)

// firestoreDealRepository implements DealRepository for one owner.
type firestoreDealRepository struct {
	client  *firestore.Client
	ownerID string
}

func (r *firestoreDealRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(dealsCollection)
}

func (r *firestoreDealRepository) scoped() firestore.Query {
	return r.collection().Where("userId", "==", r.ownerID)
}

func decodeDeal(doc *firestore.DocumentSnapshot) (*models.Deal, error) {
	var deal models.Deal
	if err := doc.DataTo(&deal); err != nil {
		return nil, fmt.Errorf("failed to decode deal %q: %w", doc.Ref.ID, err)
	}
	deal.ID = doc.Ref.ID
	return &deal, nil
}

func decodeDeals(iter *firestore.DocumentIterator) ([]*models.Deal, error) {
	defer iter.Stop()
	deals := []*models.Deal{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return deals, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate deals: %w", err)
		}
		deal, err := decodeDeal(doc)
		if err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}
}

func (r *firestoreDealRepository) Create(ctx context.Context, deal *models.Deal) error {
	if r.ownerID == "" {
		return ErrMissingOwner
	}
	deal.UserID = r.ownerID
	deal.ID = NewID()
	if _, err := r.collection().Doc(deal.ID).Create(ctx, deal); err != nil {
		deal.ID = ""
		return fmt.Errorf("failed to create deal: %w", translateFirestoreError(err))
	}
	return nil
}

func (r *firestoreDealRepository) GetByID(ctx context.Context, dealID string) (*models.Deal, error) {
	if r.ownerID == "" {
		return nil, ErrMissingOwner
	}
	snap, err := r.collection().Doc(dealID).Get(ctx)
	if err != nil {
		if errors.Is(translateFirestoreError(err), ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deal %q: %w", dealID, err)
	}
	deal, err := decodeDeal(snap)
	if err != nil {
		return nil, err
	}
	if deal.UserID != r.ownerID {
		return nil, ErrNotFound
	}
	return deal, nil
}

// List runs the filtered, ordered page query and a count aggregation over
// the same filters.
func (r *firestoreDealRepository) List(ctx context.Context, params models.DealListParams) ([]*models.Deal, int, error) {
	if r.ownerID == "" {
		return nil, 0, ErrMissingOwner
	}
	query := r.scoped()
	if params.PaymentStatus != "" {
		query = query.Where("paymentStatus", "==", string(params.PaymentStatus))
	}
	if params.Platform != "" {
		query = query.Where("platform", "==", string(params.Platform))
	}

	total, err := countQuery(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	direction := firestore.Asc
	if params.Sort.Desc {
		direction = firestore.Desc
	}
	pageQuery := query.OrderBy(params.Sort.Field, direction).Offset(params.Skip)
	if params.Limit > 0 {
		pageQuery = pageQuery.Limit(params.Limit)
	}
	deals, err := decodeDeals(pageQuery.Documents(ctx))
	if err != nil {
		return nil, 0, err
	}
	return deals, total, nil
}

func countQuery(ctx context.Context, query firestore.Query) (int, error) {
	results, err := query.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count deals: %w", err)
	}
	count, ok := results["all"]
	if !ok {
		return 0, errors.New("count aggregation missing from result")
	}
	value, ok := count.(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected count aggregation type %T", count)
	}
	return int(value.GetIntegerValue()), nil
}

func (r *firestoreDealRepository) ListAll(ctx context.Context) ([]*models.Deal, error) {
	if r.ownerID == "" {
		return nil, ErrMissingOwner
	}
	return decodeDeals(r.scoped().Documents(ctx))
}

func (r *firestoreDealRepository) CountByBrand(ctx context.Context, brandID string) (int, error) {
	if r.ownerID == "" {
		return 0, ErrMissingOwner
	}
	return countQuery(ctx, r.scoped().Where("brandId", "==", brandID))
}

func (r *firestoreDealRepository) Update(ctx context.Context, dealID string, update models.DealUpdate) (*models.Deal, error) {
	if r.ownerID == "" {
		return nil, ErrMissingOwner
	}
	ref := r.collection().Doc(dealID)
	var updated *models.Deal
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return translateFirestoreError(err)
		}
		deal, err := decodeDeal(snap)
		if err != nil {
			return err
		}
		if deal.UserID != r.ownerID {
			return ErrNotFound
		}
		update.Apply(deal)
		updated = deal
		return tx.Set(ref, deal)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update deal %q: %w", dealID, err)
	}
	return updated, nil
}

func (r *firestoreDealRepository) Delete(ctx context.Context, dealID string) error {
	if r.ownerID == "" {
		return ErrMissingOwner
	}
	ref := r.collection().Doc(dealID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return translateFirestoreError(err)
		}
		if owner, err := snap.DataAt("userId"); err != nil || owner != r.ownerID {
			return ErrNotFound
		}
		return tx.Delete(ref)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete deal %q: %w", dealID, err)
	}
	return nil
}
