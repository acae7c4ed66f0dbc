package models

import "strings"

// CreateBrandRequest represents the request body for creating a brand.
type CreateBrandRequest struct {
	Name            string   `json:"name" validate:"required,max=100"`
	InstagramHandle *string  `json:"instagramHandle,omitempty" validate:"omitempty,max=50"`
	Platform        Platform `json:"platform" validate:"required,platform"`
}

// Normalize trims the text fields.
func (r *CreateBrandRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	trimPtr(r.InstagramHandle)
}

// UpdateBrandRequest represents the request body for updating a brand.
// Pointers distinguish fields left out of the update from empty values.
type UpdateBrandRequest struct {
	Name            *string   `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	InstagramHandle *string   `json:"instagramHandle,omitempty" validate:"omitempty,max=50"`
	Platform        *Platform `json:"platform,omitempty" validate:"omitempty,platform"`
}

// Normalize trims the text fields that are present.
func (r *UpdateBrandRequest) Normalize() {
	trimPtr(r.Name)
	trimPtr(r.InstagramHandle)
}

// DeliverableRequest is one deliverable in a deal request body.
type DeliverableRequest struct {
	Type     DeliverableType   `json:"type" validate:"required,deliverabletype"`
	Quantity *float64          `json:"quantity" validate:"required,wholenumber,min=1,max=100"`
	Status   DeliverableStatus `json:"status,omitempty" validate:"omitempty,deliverablestatus"`
}

// CreateDealRequest represents the request body for creating a deal.
type CreateDealRequest struct {
	BrandID       string               `json:"brandId" validate:"required,objectid"`
	DealName      string               `json:"dealName" validate:"required,max=200"`
	Platform      Platform             `json:"platform" validate:"required,platform"`
	Deliverables  []DeliverableRequest `json:"deliverables" validate:"required,min=1,max=20,dive"`
	DueDate       *FlexTime            `json:"dueDate" validate:"required,date"`
	PaymentAmount *float64             `json:"paymentAmount" validate:"required,min=0,max=10000000"`
	PaymentStatus PaymentStatus        `json:"paymentStatus,omitempty" validate:"omitempty,paymentstatus"`
	Notes         *string              `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// Normalize trims the text fields.
func (r *CreateDealRequest) Normalize() {
	r.BrandID = strings.TrimSpace(r.BrandID)
	r.DealName = strings.TrimSpace(r.DealName)
	trimPtr(r.Notes)
}

// UpdateDealRequest represents the request body for updating a deal. Every
// field is optional; deliverables, when present, replace the whole list.
type UpdateDealRequest struct {
	BrandID       *string               `json:"brandId,omitempty" validate:"omitempty,objectid"`
	DealName      *string               `json:"dealName,omitempty" validate:"omitempty,min=1,max=200"`
	Platform      *Platform             `json:"platform,omitempty" validate:"omitempty,platform"`
	Deliverables  *[]DeliverableRequest `json:"deliverables,omitempty" validate:"omitempty,min=1,max=20,dive"`
	DueDate       *FlexTime             `json:"dueDate,omitempty" validate:"omitempty,date"`
	PaymentAmount *float64              `json:"paymentAmount,omitempty" validate:"omitempty,min=0,max=10000000"`
	PaymentStatus *PaymentStatus        `json:"paymentStatus,omitempty" validate:"omitempty,paymentstatus"`
	Notes         *string               `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// Normalize trims the text fields that are present.
func (r *UpdateDealRequest) Normalize() {
	trimPtr(r.BrandID)
	trimPtr(r.DealName)
	trimPtr(r.Notes)
}

// ChangePlanRequest represents the request body for switching plans.
type ChangePlanRequest struct {
	Plan Plan `json:"plan" validate:"required,plan"`
}

// Normalize trims and lowercases the plan name.
func (r *ChangePlanRequest) Normalize() {
	r.Plan = Plan(strings.ToLower(strings.TrimSpace(string(r.Plan))))
}

// ToDeliverables converts request items to model deliverables, defaulting
// status to pending.
func ToDeliverables(items []DeliverableRequest) []Deliverable {
	out := make([]Deliverable, 0, len(items))
	for _, item := range items {
		d := Deliverable{Type: item.Type, Status: item.Status}
		if item.Quantity != nil {
			d.Quantity = int(*item.Quantity)
		}
		if d.Status == "" {
			d.Status = DeliverablePending
		}
		out = append(out, d)
	}
	return out
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
