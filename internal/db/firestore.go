package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection     = "users"
	brandsCollection    = "brands"
	dealsCollection     = "deals"
	auditLogsCollection = "auditLogs"
)

// FirestoreStore implements Store on Cloud Firestore. Brand and deal
// documents live in top-level collections and carry a userId field that
// every scoped query filters on.
//
// Deal listing needs composite indexes on (userId, <filter>, <sort field>).
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore wraps an initialised Firestore client.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Users() UserRepository {
	return &firestoreUserRepository{client: s.client}
}

func (s *FirestoreStore) Brands(ownerID string) BrandRepository {
	return &firestoreBrandRepository{client: s.client, ownerID: ownerID}
}

func (s *FirestoreStore) Deals(ownerID string) DealRepository {
	return &firestoreDealRepository{client: s.client, ownerID: ownerID}
}

func (s *FirestoreStore) Audit() AuditRepository {
	return &firestoreAuditRepository{client: s.client}
}

// Ping issues a minimal read to confirm Firestore is reachable.
func (s *FirestoreStore) Ping(ctx context.Context) error {
	iter := s.client.Collection(usersCollection).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("firestore ping: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// translateFirestoreError maps gRPC status codes onto the package sentinels.
func translateFirestoreError(err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrDuplicate
	default:
		return err
	}
}

// collectRefs drains an iterator into document references.
func collectRefs(iter *firestore.DocumentIterator) ([]*firestore.DocumentRef, error) {
	defer iter.Stop()
	var refs []*firestore.DocumentRef
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return refs, nil
		}
		if err != nil {
			return nil, err
		}
		refs = append(refs, doc.Ref)
	}
}
