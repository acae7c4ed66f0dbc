package core

import (
	"errors"
	"fmt"
	"strings"

	"creatorflow-backend-go/internal/validation"
)

var (
	// ErrUnauthorized is returned when an operation runs without a caller.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidID is matched by every *InvalidIDError.
	ErrInvalidID = errors.New("invalid id format")
)

// InvalidIDError reports a malformed identifier for a given entity.
type InvalidIDError struct {
	Entity string
	ID     string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid %s ID format", e.Entity)
}

func (e *InvalidIDError) Is(target error) bool {
	return target == ErrInvalidID
}

// NormalizeID checks that id is a 24 character hex id and lowercases it.
func NormalizeID(entity, id string) (string, error) {
	id = strings.TrimSpace(id)
	if !validation.IsObjectID(id) {
		return "", &InvalidIDError{Entity: entity, ID: id}
	}
	return strings.ToLower(id), nil
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrUnauthorized
	}
	return nil
}
