package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"creatorflow-backend-go/internal/db"
	"creatorflow-backend-go/internal/models"
)

// auditService implements the AuditService interface.
type auditService struct {
	auditRepo db.AuditRepository
}

// NewAuditService creates a new AuditService instance.
func NewAuditService(auditRepo db.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// CreateAuditLog stamps the entry with the request metadata carried by ctx
// and stores it.
func (s *auditService) CreateAuditLog(ctx context.Context, logEntry models.AuditLog) error {
	if logEntry.Timestamp.IsZero() {
		logEntry.Timestamp = time.Now().UTC()
	}
	if meta, ok := RequestMetaFromContext(ctx); ok {
		if logEntry.IPAddress == "" {
			logEntry.IPAddress = meta.IPAddress
		}
		if logEntry.UserAgent == "" {
			logEntry.UserAgent = meta.UserAgent
		}
	}
	if err := s.auditRepo.Create(ctx, logEntry); err != nil {
		return fmt.Errorf("failed to create audit log via repository: %w", err)
	}
	return nil
}

// RequestMeta is the caller information recorded on audit entries.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

type requestMetaKey struct{}

// WithRequestMeta attaches caller information to ctx.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext returns the request metadata stored by WithRequestMeta.
func RequestMetaFromContext(ctx context.Context) (RequestMeta, bool) {
	meta, ok := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta, ok
}

// recordAudit writes an audit entry without failing the caller.
func recordAudit(ctx context.Context, audit AuditService, logger *zap.Logger, entry models.AuditLog) {
	if audit == nil {
		return
	}
	if err := audit.CreateAuditLog(ctx, entry); err != nil {
		logger.Warn("Failed to write audit log",
			zap.String("action", entry.Action),
			zap.String("userId", entry.UserID),
			zap.String("targetId", entry.TargetID),
			zap.Error(err),
		)
	}
}
