package core

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"creatorflow-backend-go/internal/db"
	"creatorflow-backend-go/internal/models"
)

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const (
	defaultUserName = "Creator"
	maxUserNameLen  = 100
	// placeholderEmailDomain is used for identities that carry no usable
	// email, e.g. phone sign-in.
	placeholderEmailDomain = "users.creatorflow.invalid"
)

// userService implements the UserService interface.
type userService struct {
	store  db.Store
	audit  AuditService
	logger *zap.Logger
	now    func() time.Time
}

// NewUserService creates a new UserService instance.
func NewUserService(store db.Store, audit AuditService, logger *zap.Logger) UserService {
	return &userService{store: store, audit: audit, logger: logger, now: utcNow}
}

func utcNow() time.Time { return time.Now().UTC() }

// GetOrCreate retrieves a user by identity subject, creating it if missing.
func (s *userService) GetOrCreate(ctx context.Context, identity models.Identity) (*models.User, bool, error) {
	if err := requireUser(identity.Subject); err != nil {
		return nil, false, err
	}

	user, err := s.store.Users().GetByID(ctx, identity.Subject)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to get user by ID '%s' from repository: %w", identity.Subject, err)
	}

	now := s.now()
	plan := identity.Plan
	if !plan.IsValid() {
		plan = models.PlanFree
	}
	newUser := &models.User{
		ID:        identity.Subject,
		Email:     userEmail(identity),
		Plan:      plan,
		CreatedAt: now,
		UpdatedAt: now,
	}
	newUser.Name = userName(identity, newUser.Email)

	err = s.store.Users().Create(ctx, newUser)
	if errors.Is(err, db.ErrDuplicate) {
		// A concurrent request may have created the same user first.
		if existing, getErr := s.store.Users().GetByID(ctx, identity.Subject); getErr == nil {
			return existing, false, nil
		}
		// Otherwise the email belongs to another account, e.g. a provider
		// account re-linked under a new subject.
		if placeholder := placeholderEmail(identity.Subject); newUser.Email != placeholder {
			s.logger.Warn("Email already registered to another user, using placeholder",
				zap.String("userId", identity.Subject))
			newUser.Email = placeholder
			err = s.store.Users().Create(ctx, newUser)
		}
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to create user (id: %s) after not found: %w", identity.Subject, err)
	}

	s.logger.Info("Created user on first access", zap.String("userId", newUser.ID), zap.String("plan", string(newUser.Plan)))
	recordAudit(ctx, s.audit, s.logger, models.AuditLog{
		UserID:     newUser.ID,
		Action:     models.ActionUserCreate,
		TargetType: models.TargetUser,
		TargetID:   newUser.ID,
		Timestamp:  now,
	})
	return newUser, true, nil
}

// GetByID retrieves a user by their ID.
func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with ID '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user by ID '%s' from repository: %w", userID, err)
	}
	return user, nil
}

// ChangePlan switches the user's plan. Billing is handled elsewhere; this
// only records the tier.
func (s *userService) ChangePlan(ctx context.Context, userID string, req models.ChangePlanRequest) (*models.User, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	current, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current.Plan == req.Plan {
		return current, nil
	}

	now := s.now()
	user, err := s.store.Users().UpdatePlan(ctx, userID, db.PlanUpdate{Plan: req.Plan, UpdatedAt: now})
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with ID '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to change plan for user '%s': %w", userID, err)
	}

	recordAudit(ctx, s.audit, s.logger, models.AuditLog{
		UserID:     userID,
		Action:     models.ActionUserPlanChange,
		TargetType: models.TargetUser,
		TargetID:   userID,
		Timestamp:  now,
		Details:    map[string]interface{}{"from": string(current.Plan), "to": string(req.Plan)},
	})
	return user, nil
}

func userEmail(identity models.Identity) string {
	email := models.NormalizeEmail(identity.Email)
	if emailPattern.MatchString(email) {
		return email
	}
	return placeholderEmail(identity.Subject)
}

func placeholderEmail(subject string) string {
	return strings.ToLower(subject) + "@" + placeholderEmailDomain
}

func userName(identity models.Identity, email string) string {
	name := strings.TrimSpace(identity.Name)
	if name == "" && identity.Email != "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	if name == "" {
		name = defaultUserName
	}
	if utf8.RuneCountInString(name) > maxUserNameLen {
		name = string([]rune(name)[:maxUserNameLen])
	}
	return name
}
