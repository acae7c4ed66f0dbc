package models

import (
	"strings"
	"time"
)

// Platform is a social platform a brand or deal lives on.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformTwitter   Platform = "twitter"
)

// Platforms lists every accepted platform in display order.
var Platforms = []Platform{PlatformInstagram, PlatformYouTube, PlatformTikTok, PlatformTwitter}

func (p Platform) IsValid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// Brand is a sponsor a creator works with.
type Brand struct {
	ID              string    `json:"id" firestore:"-"`
	UserID          string    `json:"userId" firestore:"userId"`
	Name            string    `json:"name" firestore:"name"`
	NameKey         string    `json:"-" firestore:"nameKey"`
	InstagramHandle string    `json:"instagramHandle,omitempty" firestore:"instagramHandle,omitempty"`
	Platform        Platform  `json:"platform" firestore:"platform"`
	CreatedAt       time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// BrandNameKey is the case-folded form used to keep brand names unique per owner.
func BrandNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Summary returns the fields embedded in deal responses.
func (b *Brand) Summary() *BrandSummary {
	return &BrandSummary{
		ID:              b.ID,
		Name:            b.Name,
		InstagramHandle: b.InstagramHandle,
		Platform:        b.Platform,
	}
}

// BrandWithDealCount is a brand detail response.
type BrandWithDealCount struct {
	Brand
	DealCount int `json:"dealCount"`
}

// BrandSummary is the subset of a brand shown alongside a deal.
type BrandSummary struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	InstagramHandle string   `json:"instagramHandle,omitempty"`
	Platform        Platform `json:"platform"`
}

// BrandUpdate carries the fields of a partial brand update. Nil means unchanged.
type BrandUpdate struct {
	Name            *string
	InstagramHandle *string
	Platform        *Platform
	UpdatedAt       time.Time
}

// Apply copies the set fields of u onto b.
func (u BrandUpdate) Apply(b *Brand) {
	if u.Name != nil {
		b.Name = *u.Name
		b.NameKey = BrandNameKey(*u.Name)
	}
	if u.InstagramHandle != nil {
		b.InstagramHandle = *u.InstagramHandle
	}
	if u.Platform != nil {
		b.Platform = *u.Platform
	}
	b.UpdatedAt = u.UpdatedAt
}
