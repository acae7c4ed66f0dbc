package models

import "time"

// DeliverableType is the kind of content promised in a deal.
type DeliverableType string

const (
	DeliverableReel  DeliverableType = "reel"
	DeliverablePost  DeliverableType = "post"
	DeliverableStory DeliverableType = "story"
	DeliverableShort DeliverableType = "short"
)

var DeliverableTypes = []DeliverableType{DeliverableReel, DeliverablePost, DeliverableStory, DeliverableShort}

// DeliverableStatus tracks whether a deliverable has been published.
type DeliverableStatus string

const (
	DeliverablePending DeliverableStatus = "pending"
	DeliverablePosted  DeliverableStatus = "posted"
)

var DeliverableStatuses = []DeliverableStatus{DeliverablePending, DeliverablePosted}

// PaymentStatus tracks where a deal stands with the brand's payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentPartial, PaymentPaid}

func (s PaymentStatus) IsValid() bool {
	for _, known := range PaymentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Deliverable is one line item of a deal, e.g. two reels.
type Deliverable struct {
	Type     DeliverableType   `json:"type" firestore:"type"`
	Quantity int               `json:"quantity" firestore:"quantity"`
	Status   DeliverableStatus `json:"status" firestore:"status"`
}

// Deal is a sponsorship engagement with a brand.
type Deal struct {
	ID            string        `json:"id" firestore:"-"`
	UserID        string        `json:"userId" firestore:"userId"`
	BrandID       string        `json:"brandId" firestore:"brandId"`
	DealName      string        `json:"dealName" firestore:"dealName"`
	Platform      Platform      `json:"platform" firestore:"platform"`
	Deliverables  []Deliverable `json:"deliverables" firestore:"deliverables"`
	DueDate       time.Time     `json:"dueDate" firestore:"dueDate"`
	PaymentAmount float64       `json:"paymentAmount" firestore:"paymentAmount"`
	PaymentStatus PaymentStatus `json:"paymentStatus" firestore:"paymentStatus"`
	Notes         string        `json:"notes,omitempty" firestore:"notes,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" firestore:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt" firestore:"updatedAt"`
}

// Clone returns a copy that shares no slices with d.
func (d *Deal) Clone() *Deal {
	out := *d
	out.Deliverables = append([]Deliverable(nil), d.Deliverables...)
	return &out
}

// DealWithBrand is a deal as returned by the API. Brand is nil when the
// referenced brand no longer exists.
type DealWithBrand struct {
	Deal
	Brand *BrandSummary `json:"brand"`
}

// DealUpdate carries the fields of a partial deal update. Nil means unchanged.
type DealUpdate struct {
	BrandID       *string
	DealName      *string
	Platform      *Platform
	Deliverables  *[]Deliverable
	DueDate       *time.Time
	PaymentAmount *float64
	PaymentStatus *PaymentStatus
	Notes         *string
	UpdatedAt     time.Time
}

// Apply copies the set fields of u onto d.
func (u DealUpdate) Apply(d *Deal) {
	if u.BrandID != nil {
		d.BrandID = *u.BrandID
	}
	if u.DealName != nil {
		d.DealName = *u.DealName
	}
	if u.Platform != nil {
		d.Platform = *u.Platform
	}
	if u.Deliverables != nil {
		d.Deliverables = append([]Deliverable(nil), (*u.Deliverables)...)
	}
	if u.DueDate != nil {
		d.DueDate = *u.DueDate
	}
	if u.PaymentAmount != nil {
		d.PaymentAmount = *u.PaymentAmount
	}
	if u.PaymentStatus != nil {
		d.PaymentStatus = *u.PaymentStatus
	}
	if u.Notes != nil {
		d.Notes = *u.Notes
	}
	d.UpdatedAt = u.UpdatedAt
}

// DealSummary aggregates a user's deals for dashboards.
type DealSummary struct {
	TotalDeals      int                   `json:"totalDeals"`
	ByPaymentStatus map[PaymentStatus]int `json:"byPaymentStatus"`
	Amounts         SummaryAmounts        `json:"amounts"`
	Deliverables    SummaryDeliverables   `json:"deliverables"`
	Overdue         int                   `json:"overdue"`
	UpcomingCount   int                   `json:"upcomingCount"`
}

// SummaryAmounts totals payment amounts across deals.
type SummaryAmounts struct {
	Expected    float64 `json:"expected"`
	Paid        float64 `json:"paid"`
	Outstanding float64 `json:"outstanding"`
}

// SummaryDeliverables counts deliverable quantities across deals.
type SummaryDeliverables struct {
	Total  int `json:"total"`
	Posted int `json:"posted"`
}

// UpcomingWindow is how far ahead a due date counts as upcoming.
const UpcomingWindow = 7 * 24 * time.Hour

// Summarize folds deals into a DealSummary relative to now.
func Summarize(deals []*Deal, now time.Time) *DealSummary {
	s := &DealSummary{ByPaymentStatus: make(map[PaymentStatus]int, len(PaymentStatuses))}
	for _, status := range PaymentStatuses {
		s.ByPaymentStatus[status] = 0
	}
	horizon := now.Add(UpcomingWindow)
	for _, d := range deals {
		s.TotalDeals++
		s.ByPaymentStatus[d.PaymentStatus]++
		s.Amounts.Expected += d.PaymentAmount
		switch d.PaymentStatus {
		case PaymentPaid:
			s.Amounts.Paid += d.PaymentAmount
		default:
			s.Amounts.Outstanding += d.PaymentAmount
		}
		for _, item := range d.Deliverables {
			s.Deliverables.Total += item.Quantity
			if item.Status == DeliverablePosted {
				s.Deliverables.Posted += item.Quantity
			}
		}
		if d.PaymentStatus != PaymentPaid && d.DueDate.Before(now) {
			s.Overdue++
		}
		if !d.DueDate.Before(now) && !d.DueDate.After(horizon) {
			s.UpcomingCount++
		}
	}
	return s
}
