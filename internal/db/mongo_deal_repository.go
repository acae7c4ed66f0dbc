package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"creatorflow-backend-go/internal/models"
)

type mongoDeliverable struct {
	Type     string `bson:"type"`
	Quantity int    `bson:"quantity"`
	Status   string `bson:"status"`
}

type mongoDeal struct {
	ID            primitive.ObjectID `bson:"_id"`
	UserID        string             `bson:"userId"`
	BrandID       primitive.ObjectID `bson:"brandId"`
	DealName      string             `bson:"dealName"`
	Platform      string             `bson:"platform"`
	Deliverables  []mongoDeliverable `bson:"deliverables"`
	DueDate       time.Time          `bson:"dueDate"`
	PaymentAmount float64            `bson:"paymentAmount"`
	PaymentStatus string             `bson:"paymentStatus"`
	Notes         string             `bson:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func toMongoDeliverables(items []models.Deliverable) []mongoDeliverable {
	out := make([]mongoDeliverable, 0, len(items))
	for _, item := range items {
		out = append(out, mongoDeliverable{Type: string(item.Type), Quantity: item.Quantity, Status: string(item.Status)})
	}
	return out
}

func (d mongoDeal) toModel() *models.Deal {
	deliverables := make([]models.Deliverable, 0, len(d.Deliverables))
	for _, item := range d.Deliverables {
		deliverables = append(deliverables, models.Deliverable{
			Type:     models.DeliverableType(item.Type),
			Quantity: item.Quantity,
			Status:   models.DeliverableStatus(item.Status),
		})
	}
	return &models.Deal{
		ID:            d.ID.Hex(),
		UserID:        d.UserID,
		BrandID:       d.BrandID.Hex(),
		DealName:      d.DealName,
		Platform:      models.Platform(d.Platform),
		Deliverables:  deliverables,
		DueDate:       d.DueDate.UTC(),
		PaymentAmount: d.PaymentAmount,
		PaymentStatus: models.PaymentStatus(d.PaymentStatus),
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}

// mongoDealRepository implements DealRepository for one owner.
type mongoDealRepository struct {
	coll    *mongo.Collection
	ownerID string
}

func (r *mongoDealRepository) byID(oid primitive.ObjectID) bson.M {
	return bson.M{"_id": oid, "userId": r.ownerID}
}

func decodeMongoDeals(ctx context.Context, cursor *mongo.Cursor) ([]*models.Deal, error) {
	var docs []mongoDeal
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode deals: %w", err)
	}
	deals := make([]*models.Deal, 0, len(docs))
	for _, doc := range docs {
		deals = append(deals, doc.toModel())
	}
	return deals, nil
}

func (r *mongoDealRepository) Create(ctx context.Context, deal *models.Deal) error {
	if r.ownerID == "" {
		return ErrMissingOwner
	}
	brandOID, ok := objectID(deal.BrandID)
	if !ok {
		return fmt.Errorf("failed to create deal: malformed brand id %q", deal.BrandID)
	}
	oid := primitive.NewObjectID()
	deal.UserID = r.ownerID
	doc := mongoDeal{
		ID:            oid,
		UserID:        deal.UserID,
		BrandID:       brandOID,
		DealName:      deal.DealName,
		Platform:      string(deal.Platform),
		Deliverables:  toMongoDeliverables(deal.Deliverables),
		DueDate:       deal.DueDate,
		PaymentAmount: deal.PaymentAmount,
		PaymentStatus: string(deal.PaymentStatus),
		Notes:         deal.Notes,
		CreatedAt:     deal.CreatedAt,
		UpdatedAt:     deal.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create deal: %w", translateMongoError(err))
	}
	deal.ID = oid.Hex()
	return nil
}

func (r *mongoDealRepository) GetByID(ctx context.Context, dealID string) (*models.Deal, error) {
	if r.ownerID == "" {
		return nil, ErrMissingOwner
	}
	oid, ok := objectID(dealID)
	if !ok {
		return nil, ErrNotFound
	}
	var doc mongoDeal
	if err := r.coll.FindOne(ctx, r.byID(oid)).Decode(&doc); err != nil {
		if errors.Is(translateMongoError(err), ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deal %q: %w", dealID, err)
	}
	return doc.toModel(), nil
}

func (r *mongoDealRepository) List(ctx context.Context, params models.DealListParams) ([]*models.Deal, int, error) {
	if r.ownerID == "" {
		return nil, 0, ErrMissingOwner
	}
	filter := bson.M{"userId": r.ownerID}
	if params.PaymentStatus != "" {
		filter["paymentStatus"] = string(params.PaymentStatus)
	}
	if params.Platform != "" {
		filter["platform"] = string(params.Platform)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count deals: %w", err)
	}

	field := params.Sort.Field
	if field == "" {
		field = "createdAt"
	}
	dir := sortDirection(params.Sort.Desc)
	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}).
		SetSkip(int64(params.Skip))
	if params.Limit > 0 {
		opts.SetLimit(int64(params.Limit))
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list deals: %w", err)
	}
	deals, err := decodeMongoDeals(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}
	return deals, int(total), nil
}

func (r *mongoDealRepository) ListAll(ctx context.Context) ([]*models.Deal, error) {
	if r.ownerID == "" {
		return nil, ErrMissingOwner
	}
	cursor, err := r.coll.Find(ctx, bson.M{"userId": r.ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	return decodeMongoDeals(ctx, cursor)
}

func (r *mongoDealRepository) CountByBrand(ctx context.Context, brandID string) (int, error) {
	if r.ownerID == "" {
		return 0, ErrMissingOwner
	}
	oid, ok := objectID(brandID)
	if !ok {
		return 0, nil
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"userId": r.ownerID, "brandId": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to count deals for brand %q: %w", brandID, err)
	}
	return int(n), nil
}

func (r *mongoDealRepository) Update(ctx context.Context, dealID string, update models.DealUpdate) (*models.Deal, error) {
	if r.ownerID == "" {
		return nil, ErrMissingOwner
	}
	oid, ok := objectID(dealID)
	if !ok {
		return nil, ErrNotFound
	}
	set := bson.M{"updatedAt": update.UpdatedAt}
	if update.BrandID != nil {
		brandOID, ok := objectID(*update.BrandID)
		if !ok {
			return nil, fmt.Errorf("failed to update deal %q: malformed brand id", dealID)
		}
		set["brandId"] = brandOID
	}
	if update.DealName != nil {
		set["dealName"] = *update.DealName
	}
	if update.Platform != nil {
		set["platform"] = string(*update.Platform)
	}
	if update.Deliverables != nil {
		set["deliverables"] = toMongoDeliverables(*update.Deliverables)
	}
	if update.DueDate != nil {
		set["dueDate"] = *update.DueDate
	}
	if update.PaymentAmount != nil {
		set["paymentAmount"] = *update.PaymentAmount
	}
	if update.PaymentStatus != nil {
		set["paymentStatus"] = string(*update.PaymentStatus)
	}
	if update.Notes != nil {
		set["notes"] = *update.Notes
	}

	var doc mongoDeal
	err := r.coll.FindOneAndUpdate(ctx, r.byID(oid), bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(translateMongoError(err), ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update deal %q: %w", dealID, err)
	}
	return doc.toModel(), nil
}

func (r *mongoDealRepository) Delete(ctx context.Context, dealID string) error {
	if r.ownerID == "" {
		return ErrMissingOwner
	}
	oid, ok := objectID(dealID)
	if !ok {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, r.byID(oid))
	if err != nil {
		return fmt.Errorf("failed to delete deal %q: %w", dealID, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
