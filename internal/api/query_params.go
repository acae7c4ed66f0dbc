package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"creatorflow-backend-go/internal/models"
)

// parseIntQuery returns defaultVal when the parameter is absent or not an integer.
func parseIntQuery(c *gin.Context, key string, defaultVal int) int {
	val := strings.TrimSpace(c.Query(key))
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}

func brandListParams(c *gin.Context) models.BrandListParams {
	params := models.BrandListParams{
		Search:   c.Query("search"),
		Platform: models.Platform(strings.TrimSpace(c.Query("platform"))),
		Sort:     models.ParseSort(c.Query("sort"), models.SortOrder{Field: "name"}, models.BrandSortFields...),
		Limit:    parseIntQuery(c, "limit", models.DefaultBrandLimit),
	}
	params.Normalize()
	return params
}

func dealListParams(c *gin.Context) models.DealListParams {
	params := models.DealListParams{
		PaymentStatus: models.PaymentStatus(strings.TrimSpace(c.Query("status"))),
		Platform:      models.Platform(strings.TrimSpace(c.Query("platform"))),
		Sort:          models.ParseSort(c.Query("sort"), models.SortOrder{Field: "createdAt", Desc: true}, models.DealSortFields...),
		Limit:         parseIntQuery(c, "limit", models.DefaultDealLimit),
		Skip:          parseIntQuery(c, "skip", 0),
	}
	params.Normalize()
	return params
}
