package models

import "time"

// Audit actions recorded by the services.
const (
	ActionUserCreate     = "USER_CREATE"
	ActionUserPlanChange = "USER_PLAN_CHANGE"
	ActionBrandCreate    = "BRAND_CREATE"
	ActionBrandUpdate    = "BRAND_UPDATE"
	ActionBrandDelete    = "BRAND_DELETE"
	ActionDealCreate     = "DEAL_CREATE"
	ActionDealUpdate     = "DEAL_UPDATE"
	ActionDealDelete     = "DEAL_DELETE"
)

// Audit target types.
const (
	TargetUser  = "USER"
	TargetBrand = "BRAND"
	TargetDeal  = "DEAL"
)

// AuditLog represents an audit trail event.
type AuditLog struct {
	ID         string                 `json:"id" firestore:"-"`
	Timestamp  time.Time              `json:"timestamp" firestore:"timestamp"`
	UserID     string                 `json:"userId" firestore:"userId"`
	Action     string                 `json:"action" firestore:"action"`
	TargetType string                 `json:"targetType,omitempty" firestore:"targetType,omitempty"`
	TargetID   string                 `json:"targetId,omitempty" firestore:"targetId,omitempty"`
	IPAddress  string                 `json:"ipAddress,omitempty" firestore:"ipAddress,omitempty"`
	UserAgent  string                 `json:"userAgent,omitempty" firestore:"userAgent,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty" firestore:"details,omitempty"`
}
