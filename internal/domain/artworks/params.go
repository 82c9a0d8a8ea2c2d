package artworks

import (
	"fmt"
	"strings"

	"art-showcase/internal/domain/paging"
)

type Availability string

const (
	AvailabilityAll       Availability = "all"
	AvailabilityAvailable Availability = "available"
	AvailabilitySold      Availability = "sold"
)

type FeaturedFilter string

const (
	FeaturedAll         FeaturedFilter = "all"
	FeaturedOnly        FeaturedFilter = "featured"
	FeaturedNonFeatured FeaturedFilter = "non-featured"
)

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceHigh SortKey = "price-high"
	SortPriceLow  SortKey = "price-low"
	SortYearNew   SortKey = "year-new"
	SortYearOld   SortKey = "year-old"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 50

	DefaultFeaturedLimit = 6
	DefaultCarouselLimit = 8
	MaxShowcaseLimit     = 24
)

var orderClauses = map[SortKey]string{
	SortNewest:    "created_at DESC, id DESC",
	SortOldest:    "created_at ASC, id ASC",
	SortPriceHigh: "price DESC, id ASC",
	SortPriceLow:  "price ASC, id ASC",
	SortYearNew:   "year DESC, id ASC",
	SortYearOld:   "year ASC, id ASC",
}

// OrderClause returns the ORDER BY for key; unknown keys sort newest first.
func OrderClause(key SortKey) string {
	if clause, ok := orderClauses[key]; ok {
		return clause
	}
	return orderClauses[SortNewest]
}

// ListParams are the catalogue filters accepted by Store.List.
type ListParams struct {
	Search       string
	Material     string
	Availability Availability
	Featured     FeaturedFilter
	SortBy       SortKey
	Page         int
	Limit        int
}

// Normalize fills defaults and rejects values outside the accepted ranges.
func (p ListParams) Normalize() (ListParams, error) {
	p.Search = strings.TrimSpace(p.Search)
	p.Material = strings.TrimSpace(p.Material)

	switch p.Availability {
	case "":
		p.Availability = AvailabilityAll
	case AvailabilityAll, AvailabilityAvailable, AvailabilitySold:
	default:
		return p, fmt.Errorf("availability must be one of all, available, sold")
	}

	switch p.Featured {
	case "":
		p.Featured = FeaturedAll
	case FeaturedAll, FeaturedOnly, FeaturedNonFeatured:
	default:
		return p, fmt.Errorf("featured must be one of all, featured, non-featured")
	}

	if _, ok := orderClauses[p.SortBy]; !ok {
		p.SortBy = SortNewest
	}

	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.Page < 1 {
		return p, fmt.Errorf("page must be >= 1")
	}

	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return p, fmt.Errorf("limit must be between 1 and %d", MaxLimit)
	}
	if !paging.InRange(p.Page, p.Limit) {
		return p, fmt.Errorf("page %d is out of range", p.Page)
	}

	return p, nil
}

// ClampShowcaseLimit bounds the size of the featured and carousel lists.
func ClampShowcaseLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > MaxShowcaseLimit {
		return MaxShowcaseLimit
	}
	return limit
}
