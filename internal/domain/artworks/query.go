package artworks

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user text safe to embed in a LIKE pattern using '\' as escape.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Both sides go through LOWER() so the database folds column and input alike.
const searchClause = `(LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(artist) LIKE LOWER(?) ESCAPE '\' OR ` +
	`LOWER(description) LIKE LOWER(?) ESCAPE '\' OR LOWER(style) LIKE LOWER(?) ESCAPE '\' OR ` +
	`LOWER(material) LIKE LOWER(?) ESCAPE '\')`

// applyFilters narrows q to the artworks matching p. p must be normalized.
func applyFilters(q *gorm.DB, p ListParams) *gorm.DB {
	if p.Search != "" {
		like := "%" + escapeLike(p.Search) + "%"
		q = q.Where(searchClause, like, like, like, like, like)
	}

	if p.Material != "" && !strings.EqualFold(p.Material, "all") {
		q = q.Where("LOWER(material) = LOWER(?)", p.Material)
	}

	switch p.Availability {
	case AvailabilityAvailable:
		q = q.Where("sold = ?", false)
	case AvailabilitySold:
		q = q.Where("sold = ?", true)
	}

	switch p.Featured {
	case FeaturedOnly:
		q = q.Where("featured = ?", true)
	case FeaturedNonFeatured:
		q = q.Where("featured = ?", false)
	}

	return q
}
