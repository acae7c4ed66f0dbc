package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"creatorflow-backend-go/internal/models"
)

type firestoreAuditRepository struct {
	client *firestore.Client
}

func (r *firestoreAuditRepository) Create(ctx context.Context, logEntry models.AuditLog) error {
	docRef := r.client.Collection(auditLogsCollection).NewDoc()
	logEntry.ID = docRef.ID
	if _, err := docRef.Create(ctx, logEntry); err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}
