package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"

	"creatorflow-backend-go/internal/models"
)

// firestoreUserRepository implements UserRepository. The document id is the
// user id.
type firestoreUserRepository struct {
	client *firestore.Client
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, ErrNotFound
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if errors.Is(translateFirestoreError(err), ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user %q: %w", userID, err)
	}
	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user %q: %w", userID, err)
	}
	user.ID = docSnap.Ref.ID
	return &user, nil
}

// Create checks email uniqueness and inserts the user in one transaction.
func (r *firestoreUserRepository) Create(ctx context.Context, user *models.User) error {
	users := r.client.Collection(usersCollection)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		refs, err := collectRefs(tx.Documents(users.Where("email", "==", user.Email).Limit(1)))
		if err != nil {
			return err
		}
		if len(refs) > 0 {
			return ErrDuplicate
		}
		return tx.Create(users.Doc(user.ID), user)
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) || errors.Is(translateFirestoreError(err), ErrDuplicate) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user %q: %w", user.ID, err)
	}
	return nil
}

func (r *firestoreUserRepository) UpdatePlan(ctx context.Context, userID string, update PlanUpdate) (*models.User, error) {
	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "plan", Value: string(update.Plan)},
		{Path: "updatedAt", Value: update.UpdatedAt},
	})
	if err != nil {
		if errors.Is(translateFirestoreError(err), ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update plan for user %q: %w", userID, err)
	}
	return r.GetByID(ctx, userID)
}
