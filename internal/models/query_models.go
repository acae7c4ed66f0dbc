package models

import "strings"

const (
	DefaultBrandLimit = 100
	MaxBrandLimit     = 200
	DefaultDealLimit  = 50
	MaxDealLimit      = 100
)

// SortOrder is a parsed sort parameter such as "-createdAt".
type SortOrder struct {
	Field string
	Desc  bool
}

// ParseSort reads a sort parameter, accepting only the given fields and
// falling back to def otherwise.
func ParseSort(raw string, def SortOrder, fields ...string) SortOrder {
	raw = strings.TrimSpace(raw)
	desc := strings.HasPrefix(raw, "-")
	field := strings.TrimPrefix(raw, "-")
	for _, f := range fields {
		if f == field {
			return SortOrder{Field: field, Desc: desc}
		}
	}
	return def
}

// BrandListParams are the filters accepted by the brand list endpoint.
type BrandListParams struct {
	Search   string
	Platform Platform
	Sort     SortOrder
	Limit    int
}

// Normalize drops invalid filters and clamps the limit.
func (p *BrandListParams) Normalize() {
	p.Search = strings.TrimSpace(p.Search)
	if p.Platform != "" && !p.Platform.IsValid() {
		p.Platform = ""
	}
	if p.Sort.Field == "" {
		p.Sort = SortOrder{Field: "name"}
	}
	if p.Limit <= 0 {
		p.Limit = DefaultBrandLimit
	}
	if p.Limit > MaxBrandLimit {
		p.Limit = MaxBrandLimit
	}
}

// DealListParams are the filters accepted by the deal list endpoint.
type DealListParams struct {
	PaymentStatus PaymentStatus
	Platform      Platform
	Sort          SortOrder
	Limit         int
	Skip          int
}

func (p *DealListParams) Normalize() {
	if p.PaymentStatus != "" && !p.PaymentStatus.IsValid() {
		p.PaymentStatus = ""
	}
	if p.Platform != "" && !p.Platform.IsValid() {
		p.Platform = ""
	}
	if p.Sort.Field == "" {
		p.Sort = SortOrder{Field: "createdAt", Desc: true}
	}
	if p.Limit <= 0 {
		p.Limit = DefaultDealLimit
	}
	if p.Limit > MaxDealLimit {
		p.Limit = MaxDealLimit
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
}

// BrandSortFields and DealSortFields are the accepted sort keys.
var (
	BrandSortFields = []string{"name", "createdAt"}
	DealSortFields  = []string{"dueDate", "createdAt", "paymentAmount"}
)
