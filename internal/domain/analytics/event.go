package analytics

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	TypePageView         = "page_view"
	TypeArtworkView      = "artwork_view"
	TypeFilterUsed       = "filter_used"
	TypeContactSubmitted = "contact_submitted"
	TypeCheckoutStarted  = "checkout_started"
)

// Types lists every accepted event type.
var Types = []string{TypePageView, TypeArtworkView, TypeFilterUsed, TypeContactSubmitted, TypeCheckoutStarted}

type Event struct {
	ID        uint    `gorm:"primaryKey"`
	Type      string  `gorm:"type:varchar(32);not null;index:idx_analytics_type_created,priority:1"`
	Path      string  `gorm:"type:varchar(512)"`
	ArtworkID *string `gorm:"type:varchar(36);index"`
	Referrer  string  `gorm:"type:varchar(512)"`
	SessionID string  `gorm:"type:varchar(64);index"`
	UserAgent string  `gorm:"type:varchar(512)"`

	CreatedAt time.Time `gorm:"index:idx_analytics_type_created,priority:2"`
}

func (Event) TableName() string {
	return "analytics_events"
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type ArtworkViews struct {
	ArtworkID string `json:"artworkId"`
	Title     string `json:"title"`
	Views     int64  `json:"views"`
}

type Summary struct {
	Since       time.Time      `json:"since"`
	Total       int64          `json:"total"`
	ByType      []TypeCount    `json:"byType"`
	TopArtworks []ArtworkViews `json:"topArtworks"`
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Record(ctx context.Context, e *Event) error {
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("record analytics event failed: %w", err)
	}
	return nil
}

// Summary aggregates events created at or after since.
func (s *Store) Summary(ctx context.Context, since time.Time) (*Summary, error) {
	out := &Summary{Since: since, ByType: []TypeCount{}, TopArtworks: []ArtworkViews{}}

	if err := s.db.WithContext(ctx).Model(&Event{}).
		Select("type, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("type").
		Order("count DESC, type ASC").
		Scan(&out.ByType).Error; err != nil {
		return nil, fmt.Errorf("analytics summary failed: %w", err)
	}
	for _, c := range out.ByType {
		out.Total += c.Count
	}

	if err := s.db.WithContext(ctx).Table("analytics_events AS e").
		Select("e.artwork_id AS artwork_id, COALESCE(a.title, '') AS title, COUNT(*) AS views").
		Joins("LEFT JOIN artworks a ON a.id = e.artwork_id").
		Where("e.type = ? AND e.artwork_id IS NOT NULL AND e.created_at >= ?", TypeArtworkView, since).
		Group("e.artwork_id, a.title").
		Order("views DESC, e.artwork_id ASC").
		Limit(10).
		Scan(&out.TopArtworks).Error; err != nil {
		return nil, fmt.Errorf("analytics summary failed: %w", err)
	}

	return out, nil
}
