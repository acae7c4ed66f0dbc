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

// MongoStore implements Store on MongoDB. Brand and deal ids are ObjectIDs;
// user ids are the identity subject and stored as strings. DeleteWithDeals
// uses a multi-document transaction and therefore needs a replica set.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects, verifies the connection and ensures indexes.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect: %w", err)
	}
	s := &MongoStore{client: client, db: client.Database(database)}
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// EnsureIndexes creates the uniqueness and listing indexes.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		brandsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "nameKey", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "name", Value: 1}}},
		},
		dealsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "dueDate", Value: 1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "paymentStatus", Value: 1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "brandId", Value: 1}}},
		},
	}
	for coll, idx := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

func (s *MongoStore) Users() UserRepository {
	return &mongoUserRepository{coll: s.db.Collection(usersCollection)}
}

func (s *MongoStore) Brands(ownerID string) BrandRepository {
	return &mongoBrandRepository{
		client:  s.client,
		brands:  s.db.Collection(brandsCollection),
		deals:   s.db.Collection(dealsCollection),
		ownerID: ownerID,
	}
}

func (s *MongoStore) Deals(ownerID string) DealRepository {
	return &mongoDealRepository{coll: s.db.Collection(dealsCollection), ownerID: ownerID}
}

func (s *MongoStore) Audit() AuditRepository {
	return &mongoAuditRepository{coll: s.db.Collection(auditLogsCollection)}
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// translateMongoError maps driver errors onto the package sentinels.
func translateMongoError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}

// objectID parses a hex id. Malformed ids can never match a document.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

func sortDirection(desc bool) int {
	if desc {
		return -1
	}
	return 1
}

type mongoUser struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Plan      string    `bson:"plan"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (u mongoUser) toModel() *models.User {
	return &models.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Plan:      models.Plan(u.Plan),
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

type mongoUserRepository struct {
	coll *mongo.Collection
}

func (r *mongoUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var doc mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc); err != nil {
		if errors.Is(translateMongoError(err), ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user %q: %w", userID, err)
	}
	return doc.toModel(), nil
}

func (r *mongoUserRepository) Create(ctx context.Context, user *models.User) error {
	doc := mongoUser{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Plan:      string(user.Plan),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if errors.Is(translateMongoError(err), ErrDuplicate) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user %q: %w", user.ID, err)
	}
	return nil
}

func (r *mongoUserRepository) UpdatePlan(ctx context.Context, userID string, update PlanUpdate) (*models.User, error) {
	var doc mongoUser
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"plan": string(update.Plan), "updatedAt": update.UpdatedAt}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(translateMongoError(err), ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update plan for user %q: %w", userID, err)
	}
	return doc.toModel(), nil
}

type mongoAuditLog struct {
	ID         primitive.ObjectID     `bson:"_id"`
	Timestamp  time.Time              `bson:"timestamp"`
	UserID     string                 `bson:"userId"`
	Action     string                 `bson:"action"`
	TargetType string                 `bson:"targetType,omitempty"`
	TargetID   string                 `bson:"targetId,omitempty"`
	IPAddress  string                 `bson:"ipAddress,omitempty"`
	UserAgent  string                 `bson:"userAgent,omitempty"`
	Details    map[string]interface{} `bson:"details,omitempty"`
}

type mongoAuditRepository struct {
	coll *mongo.Collection
}

func (r *mongoAuditRepository) Create(ctx context.Context, logEntry models.AuditLog) error {
	doc := mongoAuditLog{
		ID:         primitive.NewObjectID(),
		Timestamp:  logEntry.Timestamp,
		UserID:     logEntry.UserID,
		Action:     logEntry.Action,
		TargetType: logEntry.TargetType,
		TargetID:   logEntry.TargetID,
		IPAddress:  logEntry.IPAddress,
		UserAgent:  logEntry.UserAgent,
		Details:    logEntry.Details,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}
