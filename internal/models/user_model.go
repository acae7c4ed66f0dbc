package models

import (
	"strings"
	"time"
)

// Plan is a subscription tier. Tiers are ordered free < pro < studio.
type Plan string

const (
	PlanFree   Plan = "free"
	PlanPro    Plan = "pro"
	PlanStudio Plan = "studio"
)

var planLevels = map[Plan]int{
	PlanFree:   0,
	PlanPro:    1,
	PlanStudio: 2,
}

// IsValid reports whether p is one of the known tiers.
func (p Plan) IsValid() bool {
	_, ok := planLevels[p]
	return ok
}

// AtLeast reports whether p grants everything required grants.
// Unknown plans never satisfy a requirement.
func (p Plan) AtLeast(required Plan) bool {
	have, ok := planLevels[p]
	if !ok {
		return false
	}
	need, ok := planLevels[required]
	if !ok {
		return false
	}
	return have >= need
}

// User represents an account holder. The ID is the subject of the identity
// token that first created the record.
type User struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Plan      Plan      `json:"plan" firestore:"plan"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Identity is what an authenticator learned about the caller from a token.
type Identity struct {
	Subject string
	Email   string
	Name    string
	// Plan seeds the plan of a user created from this identity. Empty means free.
	Plan Plan
}

// NormalizeEmail lowercases and trims an address for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
