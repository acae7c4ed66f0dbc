package db

import (
	"sort"
	"strings"

	"creatorflow-backend-go/internal/models"
)

// matchBrand applies the platform and search filters of a brand list.
func matchBrand(b *models.Brand, params models.BrandListParams) bool {
	if params.Platform != "" && b.Platform != params.Platform {
		return false
	}
	if params.Search != "" && !strings.Contains(strings.ToLower(b.Name), strings.ToLower(params.Search)) {
		return false
	}
	return true
}

func matchDeal(d *models.Deal, params models.DealListParams) bool {
	if params.PaymentStatus != "" && d.PaymentStatus != params.PaymentStatus {
		return false
	}
	if params.Platform != "" && d.Platform != params.Platform {
		return false
	}
	return true
}

// sortBrands orders brands in place. Ties fall back to the id so pages are stable.
func sortBrands(brands []*models.Brand, order models.SortOrder) {
	sort.SliceStable(brands, func(i, j int) bool {
		a, b := brands[i], brands[j]
		var cmp int
		switch order.Field {
		case "createdAt":
			cmp = a.CreatedAt.Compare(b.CreatedAt)
		default:
			cmp = strings.Compare(a.Name, b.Name)
		}
		if cmp == 0 {
			cmp = strings.Compare(a.ID, b.ID)
		}
		if order.Desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func sortDeals(deals []*models.Deal, order models.SortOrder) {
	sort.SliceStable(deals, func(i, j int) bool {
		a, b := deals[i], deals[j]
		var cmp int
		switch order.Field {
		case "dueDate":
			cmp = a.DueDate.Compare(b.DueDate)
		case "paymentAmount":
			switch {
			case a.PaymentAmount < b.PaymentAmount:
				cmp = -1
			case a.PaymentAmount > b.PaymentAmount:
				cmp = 1
			}
		default:
			cmp = a.CreatedAt.Compare(b.CreatedAt)
		}
		if cmp == 0 {
			cmp = strings.Compare(a.ID, b.ID)
		}
		if order.Desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// page slices items to [skip, skip+limit).
func page[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return items[skip:end]
}
