package artworks

import (
	"art-showcase/internal/domain/artworks"
	"art-showcase/internal/domain/media"
)

// ---------- requests

type ListQuery struct {
	Search       string `form:"search" binding:"max=200"`
	Material     string `form:"material" binding:"max=120"`
	Availability string `form:"availability" binding:"omitempty,oneof=all available sold"`
	Featured     string `form:"featured" binding:"omitempty,oneof=all featured non-featured"`
	SortBy       string `form:"sortBy"` // unknown keys fall back to newest
	Page         int    `form:"page" binding:"omitempty,min=1"`
	Limit        int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

func (q ListQuery) Params() artworks.ListParams {
	return artworks.ListParams{
		Search:       q.Search,
		Material:     q.Material,
		Availability: artworks.Availability(q.Availability),
		Featured:     artworks.FeaturedFilter(q.Featured),
		SortBy:       artworks.SortKey(q.SortBy),
		Page:         q.Page,
		Limit:        q.Limit,
	}
}

type ShowcaseQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=24"`
}

type CreateArtworkRequest struct {
	Title        string  `json:"title" binding:"required,max=200"`
	Artist       string  `json:"artist" binding:"required,max=120"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	Description  string  `json:"description" binding:"max=5000"`
	Dimensions   string  `json:"dimensions" binding:"max=120"`
	Material     string  `json:"material" binding:"max=120"`
	Style        string  `json:"style" binding:"max=120"`
	Year         int     `json:"year" binding:"required,gt=0"`
	Featured     bool    `json:"featured"`
	Sold         bool    `json:"sold"`
	ImageURL     string  `json:"imageUrl" binding:"omitempty,url"`
	ImageKey     string  `json:"imageKey" binding:"max=255"`
	ThumbnailURL string  `json:"thumbnailUrl" binding:"omitempty,url"`
}

func (r CreateArtworkRequest) Artwork() *artworks.Artwork {
	return &artworks.Artwork{
		Title:       r.Title,
		Artist:      r.Artist,
		Price:       r.Price,
		Description: r.Description,
		Dimensions:  r.Dimensions,
		Material:    r.Material,
		Style:       r.Style,
		Year:        r.Year,
		Featured:    r.Featured,
		Sold:        r.Sold,
		ImageRef: media.ImageRef{
			ImageURL:     r.ImageURL,
			ImageKey:     r.ImageKey,
			ThumbnailURL: r.ThumbnailURL,
		},
	}
}

// UpdateArtworkRequest is a partial update: absent fields stay as stored.
type UpdateArtworkRequest struct {
	Title        *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Artist       *string  `json:"artist" binding:"omitempty,min=1,max=120"`
	Price        *float64 `json:"price" binding:"omitempty,gt=0"`
	Description  *string  `json:"description" binding:"omitempty,max=5000"`
	Dimensions   *string  `json:"dimensions" binding:"omitempty,max=120"`
	Material     *string  `json:"material" binding:"omitempty,max=120"`
	Style        *string  `json:"style" binding:"omitempty,max=120"`
	Year         *int     `json:"year" binding:"omitempty,gt=0"`
	Featured     *bool    `json:"featured"`
	Sold         *bool    `json:"sold"`
	ImageURL     *string  `json:"imageUrl" binding:"omitempty,url,max=2048"`
	ImageKey     *string  `json:"imageKey" binding:"omitempty,max=255"`
	ThumbnailURL *string  `json:"thumbnailUrl" binding:"omitempty,url,max=2048"`
}

func (r UpdateArtworkRequest) Patch() artworks.Patch {
	return artworks.Patch{
		Title:        r.Title,
		Artist:       r.Artist,
		Price:        r.Price,
		Description:  r.Description,
		Dimensions:   r.Dimensions,
		Material:     r.Material,
		Style:        r.Style,
		Year:         r.Year,
		Featured:     r.Featured,
		Sold:         r.Sold,
		ImageURL:     r.ImageURL,
		ImageKey:     r.ImageKey,
		ThumbnailURL: r.ThumbnailURL,
	}
}

// ---------- responses

type ListResponse struct {
	Artworks []artworks.Artwork `json:"artworks"`
}
