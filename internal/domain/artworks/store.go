package artworks

import (
	"context"
	"errors"
	"fmt"

	"art-showcase/internal/domain/paging"
	"art-showcase/internal/logging"
	"art-showcase/internal/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Page is one page of the catalogue plus its pagination envelope.
type Page struct {
	Artworks   []Artwork         `json:"artworks"`
	Pagination paging.Pagination `json:"pagination"`
}

type Stats struct {
	Total        int64    `json:"total"`
	Available    int64    `json:"available"`
	Sold         int64    `json:"sold"`
	Featured     int64    `json:"featured"`
	TotalValue   float64  `json:"totalValue"`
	AveragePrice float64  `json:"averagePrice"`
	Materials    []string `json:"materials"`
}

// Store is the artwork data access layer.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) artworks(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&Artwork{})
}

// failed logs err and wraps it as "<operation> failed: <err>".
func failed(operation string, err error) error {
	metrics.DBQueryErrors.WithLabelValues(operation).Inc()
	logging.Error().Err(err).Str("operation", operation).Msg("artwork store operation failed")
	return fmt.Errorf("%s failed: %w", operation, err)
}

// List runs the filtered page query and the matching count concurrently and
// joins them into a Page.
func (s *Store) List(ctx context.Context, params ListParams) (*Page, error) {
	p, err := params.Normalize()
	if err != nil {
		return nil, err
	}

	var (
		items []Artwork
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return applyFilters(s.artworks(gctx), p).
			Order(OrderClause(p.SortBy)).
			Offset(paging.Offset(p.Page, p.Limit)).
			Limit(p.Limit).
			Find(&items).Error
	})
	g.Go(func() error {
		return applyFilters(s.artworks(gctx), p).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, failed("list artworks", err)
	}

	if items == nil {
		items = []Artwork{}
	}
	return &Page{
		Artworks:   items,
		Pagination: paging.New(p.Page, p.Limit, total),
	}, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Artwork, error) {
	if !ValidID(id) {
		return nil, ErrInvalidID
	}

	var a Artwork
	if err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, failed("get artwork", err)
	}
	return &a, nil
}

// Featured returns the newest featured artworks, sold or not.
func (s *Store) Featured(ctx context.Context, limit int) ([]Artwork, error) {
	items := []Artwork{}
	err := s.artworks(ctx).
		Where("featured = ?", true).
		Order(OrderClause(SortNewest)).
		Limit(ClampShowcaseLimit(limit, DefaultFeaturedLimit)).
		Find(&items).Error
	if err != nil {
		return nil, failed("list featured artworks", err)
	}
	return items, nil
}

// Carousel returns featured, unsold artworks that have an image to show.
func (s *Store) Carousel(ctx context.Context, limit int) ([]Artwork, error) {
	items := []Artwork{}
	err := s.artworks(ctx).
		Where("featured = ? AND sold = ?", true, false).
		Where("image_url IS NOT NULL AND image_url <> ''").
		Order(OrderClause(SortNewest)).
		Limit(ClampShowcaseLimit(limit, DefaultCarouselLimit)).
		Find(&items).Error
	if err != nil {
		return nil, failed("list carousel artworks", err)
	}
	return items, nil
}

// Materials lists the distinct non-empty materials in alphabetical order.
func (s *Store) Materials(ctx context.Context) ([]string, error) {
	out, err := s.materials(ctx)
	if err != nil {
		return nil, failed("list materials", err)
	}
	return out, nil
}

func (s *Store) materials(ctx context.Context) ([]string, error) {
	out := []string{}
	err := s.artworks(ctx).
		Distinct().
		Where("material IS NOT NULL AND material <> ''").
		Order("material ASC").
		Pluck("material", &out).Error
	return out, err
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var row struct {
		Total        int64
		Sold         int64
		Featured     int64
		TotalValue   float64
		AveragePrice float64
	}
	var materials []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.artworks(gctx).Select(
			"COUNT(*) AS total, " +
				"COALESCE(SUM(CASE WHEN sold THEN 1 ELSE 0 END), 0) AS sold, " +
				"COALESCE(SUM(CASE WHEN featured THEN 1 ELSE 0 END), 0) AS featured, " +
				"COALESCE(SUM(CASE WHEN sold THEN 0 ELSE price END), 0) AS total_value, " +
				"COALESCE(AVG(price), 0) AS average_price",
		).Scan(&row).Error
	})
	g.Go(func() error {
		var err error
		materials, err = s.materials(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, failed("artwork stats", err)
	}

	return &Stats{
		Total:        row.Total,
		Available:    row.Total - row.Sold,
		Sold:         row.Sold,
		Featured:     row.Featured,
		TotalValue:   row.TotalValue,
		AveragePrice: row.AveragePrice,
		Materials:    materials,
	}, nil
}

// Create stores a and assigns it a fresh id when none is set.
func (s *Store) Create(ctx context.Context, a *Artwork) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	} else if !ValidID(a.ID) {
		return ErrInvalidID
	}

	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return failed("create artwork", err)
	}
	return nil
}

// Update applies the set fields of patch to the artwork and returns the result.
func (s *Store) Update(ctx context.Context, id string, patch Patch) (*Artwork, error) {
	if !ValidID(id) {
		return nil, ErrInvalidID
	}

	var out Artwork
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Artwork
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return err
		}

		if cols := patch.Columns(); len(cols) > 0 {
			if err := tx.Model(&existing).Updates(cols).Error; err != nil {
				return err
			}
		}

		return tx.First(&out, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, failed("update artwork", err)
	}
	return &out, nil
}

// Delete removes the artwork and returns what was stored.
func (s *Store) Delete(ctx context.Context, id string) (*Artwork, error) {
	if !ValidID(id) {
		return nil, ErrInvalidID
	}

	var existing Artwork
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Artwork{}, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, failed("delete artwork", err)
	}
	return &existing, nil
}

// MarkSold flips the sold flag inside tx. It fails with ErrAlreadySold when
// another sale got there first.
func MarkSold(tx *gorm.DB, id string) error {
	res := tx.Model(&Artwork{}).
		Where("id = ? AND sold = ?", id, false).
		Update("sold", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&Artwork{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrArtworkNotFound
		}
		return ErrAlreadySold
	}
	return nil
}
