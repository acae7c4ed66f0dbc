package db

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"creatorflow-backend-go/internal/models"
)

type mongoBrand struct {
	ID              primitive.ObjectID `bson:"_id"`
	UserID          string             `bson:"userId"`
	Name            string             `bson:"name"`
	NameKey         string             `bson:"nameKey"`
	InstagramHandle string             `bson:"instagramHandle,omitempty"`
	Platform        string             `bson:"platform"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func (b mongoBrand) toModel() *models.Brand {
	return &models.Brand{
		ID:              b.ID.Hex(),
		UserID:          b.UserID,
		Name:            b.Name,
		NameKey:         b.NameKey,
		InstagramHandle: b.InstagramHandle,
		Platform:        models.Platform(b.Platform),
		CreatedAt:       b.CreatedAt.UTC(),
		UpdatedAt:       b.UpdatedAt.UTC(),
	}
}

// mongoBrandRepository implements BrandRepository for one owner.
type mongoBrandRepository struct {
	client  *mongo.Client
	brands  *mongo.Collection
	deals   *mongo.Collection
	ownerID string
}

func (r *mongoBrandRepository) byID(oid primitive.ObjectID) bson.M {
	return bson.M{"_id": oid, "userId": r.ownerID}
}

func (r *mongoBrandRepository) Create(ctx context.Context, brand *models.Brand) error {
	if r.ownerID == "" {
		return ErrMissingOwner
	}
	oid := primitive.NewObjectID()
	brand.UserID = r.ownerID
	brand.NameKey = models.BrandNameKey(brand.Name)
	doc := mongoBrand{
		ID:              oid,
		UserID:          brand.UserID,
		Name:            brand.Name,
		NameKey:         brand.NameKey,
		InstagramHandle: brand.InstagramHandle,
		Platform:        string(brand.Platform),
		CreatedAt:       brand.CreatedAt,
		UpdatedAt:       brand.UpdatedAt,
	}
	if _, err := r.brands.InsertOne(ctx, doc); err != nil {
		if errors.Is(translateMongoError(err), ErrDuplicate) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create brand: %w", err)
	}
	brand.ID = oid.Hex()
	return nil
}

func (r *mongoBrandRepository) GetByID(ctx context.Context, brandID string) (*models.Brand, error) {
	if r.ownerID == "" {
		return nil, ErrMissingOwner
	}
	oid, ok := objectID(brandID)
	if !ok {
		return nil, ErrNotFound
	}
	var doc mongoBrand
	if err := r.brands.FindOne(ctx, r.byID(oid)).Decode(&doc); err != nil {
		if errors.Is(translateMongoError(err), ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get brand %q: %w", brandID, err)
	}
	return doc.toModel(), nil
}

func (r *mongoBrandRepository) GetMany(ctx context.Context, ids []string) (map[string]*models.Brand, error) {
	if r.ownerID == "" {
		return nil, ErrMissingOwner
	}
	out := make(map[string]*models.Brand, len(ids))
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := objectID(id); ok {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return out, nil
	}
	cursor, err := r.brands.Find(ctx, bson.M{"_id": bson.M{"$in": oids}, "userId": r.ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to get brands: %w", err)
	}
	var docs []mongoBrand
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode brands: %w", err)
	}
	for _, doc := range docs {
		brand := doc.toModel()
		out[brand.ID] = brand
	}
	return out, nil
}

// List matches the search as a literal, case-insensitive substring.
func (r *mongoBrandRepository) List(ctx context.Context, params models.BrandListParams) ([]*models.Brand, int, error) {
	if r.ownerID == "" {
		return nil, 0, ErrMissingOwner
	}
	filter := bson.M{"userId": r.ownerID}
	if params.Platform != "" {
		filter["platform"] = string(params.Platform)
	}
	if params.Search != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(params.Search), Options: "i"}
	}

	total, err := r.brands.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count brands: %w", err)
	}

	field := params.Sort.Field
	if field == "" {
		field = "name"
	}
	dir := sortDirection(params.Sort.Desc)
	opts := options.Find().SetSort(bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}})
	if params.Limit > 0 {
		opts.SetLimit(int64(params.Limit))
	}
	cursor, err := r.brands.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list brands: %w", err)
	}
	var docs []mongoBrand
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode brands: %w", err)
	}
	brands := make([]*models.Brand, 0, len(docs))
	for _, doc := range docs {
		brands = append(brands, doc.toModel())
	}
	return brands, int(total), nil
}

func (r *mongoBrandRepository) Update(ctx context.Context, brandID string, update models.BrandUpdate) (*models.Brand, error) {
	if r.ownerID == "" {
		return nil, ErrMissingOwner
	}
	oid, ok := objectID(brandID)
	if !ok {
		return nil, ErrNotFound
	}
	set := bson.M{"updatedAt": update.UpdatedAt}
	if update.Name != nil {
		set["name"] = *update.Name
		set["nameKey"] = models.BrandNameKey(*update.Name)
	}
	if update.InstagramHandle != nil {
		set["instagramHandle"] = *update.InstagramHandle
	}
	if update.Platform != nil {
		set["platform"] = string(*update.Platform)
	}

	var doc mongoBrand
	err := r.brands.FindOneAndUpdate(ctx, r.byID(oid), bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		translated := translateMongoError(err)
		if errors.Is(translated, ErrNotFound) || errors.Is(translated, ErrDuplicate) {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to update brand %q: %w", brandID, err)
	}
	return doc.toModel(), nil
}

func (r *mongoBrandRepository) Delete(ctx context.Context, brandID string) error {
	if r.ownerID == "" {
		return ErrMissingOwner
	}
	oid, ok := objectID(brandID)
	if !ok {
		return ErrNotFound
	}

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		inUse, err := r.deals.CountDocuments(sc, bson.M{"userId": r.ownerID, "brandId": oid}, options.Count().SetLimit(1))
		if err != nil {
			return nil, err
		}
		if inUse > 0 {
			return nil, ErrInUse
		}
		res, err := r.brands.DeleteOne(sc, r.byID(oid))
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, ErrNotFound
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInUse) {
			return err
		}
		return fmt.Errorf("failed to delete brand %q: %w", brandID, err)
	}
	return nil
}

// DeleteWithDeals removes the owner's deals for the brand and the brand in a
// session transaction.
func (r *mongoBrandRepository) DeleteWithDeals(ctx context.Context, brandID string) (int, error) {
	if r.ownerID == "" {
		return 0, ErrMissingOwner
	}
	oid, ok := objectID(brandID)
	if !ok {
		return 0, ErrNotFound
	}

	session, err := r.client.StartSession()
	if err != nil {
		return 0, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.brands.DeleteOne(sc, r.byID(oid))
		if err != nil {
			return 0, err
		}
		if res.DeletedCount == 0 {
			return 0, ErrNotFound
		}
		dealsRes, err := r.deals.DeleteMany(sc, bson.M{"userId": r.ownerID, "brandId": oid})
		if err != nil {
			return 0, err
		}
		return int(dealsRes.DeletedCount), nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to delete brand %q with deals: %w", brandID, err)
	}
	return result.(int), nil
}
