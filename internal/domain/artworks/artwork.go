package artworks

import (
	"errors"
	"regexp"
	"time"

	"art-showcase/internal/domain/media"
)

var (
	ErrArtworkNotFound = errors.New("artwork not found")
	ErrInvalidID       = errors.New("invalid artwork id")
	ErrAlreadySold     = errors.New("artwork already sold")
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{10,36}$`)

// ValidID reports whether id has the shape of an artwork identifier.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

type Artwork struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	Title       string  `gorm:"not null" json:"title"`
	Artist      string  `gorm:"not null;index" json:"artist"`
	Price       float64 `gorm:"not null" json:"price"`
	Description string  `json:"description"`
	Dimensions  string  `json:"dimensions"`
	Material    string  `gorm:"index" json:"material"`
	Style       string  `json:"style"`
	Year        int     `gorm:"not null" json:"year"`

	Featured bool `gorm:"not null;default:false;index" json:"featured"`
	Sold     bool `gorm:"not null;default:false;index" json:"sold"`

	media.ImageRef `gorm:"embedded"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Title        *string
	Artist       *string
	Price        *float64
	Description  *string
	Dimensions   *string
	Material     *string
	Style        *string
	Year         *int
	Featured     *bool
	Sold         *bool
	ImageURL     *string
	ImageKey     *string
	ThumbnailURL *string
}

// Columns maps the set fields of p to their column names.
func (p Patch) Columns() map[string]interface{} {
	out := map[string]interface{}{}
	set := func(col string, isSet bool, v interface{}) {
		if isSet {
			out[col] = v
		}
	}

	set("title", p.Title != nil, deref(p.Title))
	set("artist", p.Artist != nil, deref(p.Artist))
	set("description", p.Description != nil, deref(p.Description))
	set("dimensions", p.Dimensions != nil, deref(p.Dimensions))
	set("material", p.Material != nil, deref(p.Material))
	set("style", p.Style != nil, deref(p.Style))
	set("image_url", p.ImageURL != nil, deref(p.ImageURL))
	set("image_key", p.ImageKey != nil, deref(p.ImageKey))
	set("thumbnail_url", p.ThumbnailURL != nil, deref(p.ThumbnailURL))
	if p.Price != nil {
		out["price"] = *p.Price
	}
	if p.Year != nil {
		out["year"] = *p.Year
	}
	if p.Featured != nil {
		out["featured"] = *p.Featured
	}
	if p.Sold != nil {
		out["sold"] = *p.Sold
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
