package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"art-showcase/internal/domain/artworks"

	"gorm.io/gorm"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusExpired = "expired"
	// StatusConflict marks a paid order whose artwork had already been sold.
	StatusConflict = "conflict"
)

var ErrOrderNotFound = errors.New("order not found")

// Order records one checkout attempt for a single artwork.
type Order struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	ArtworkID       string     `gorm:"type:varchar(36);not null;index" json:"artworkId"`
	ArtworkTitle    string     `json:"artworkTitle"`
	AmountEUR       float64    `json:"amountEur"`
	StripeSessionID string     `gorm:"uniqueIndex" json:"stripeSessionId"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CustomerEmail   *string    `json:"customerEmail,omitempty"`
	PaidAt          *time.Time `json:"paidAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, o *Order) error {
	if err := s.db.WithContext(ctx).Create(o).Error; err != nil {
		return fmt.Errorf("create order failed: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, status string) ([]Order, error) {
	out := []Order{}
	q := s.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list orders failed: %w", err)
	}
	return out, nil
}

// MarkPaid settles the order for sessionID and marks its artwork sold in one
// transaction. Settling twice is a no-op. If the artwork was sold through
// another order the order is kept as StatusConflict for manual refund.
func (s *Store) MarkPaid(ctx context.Context, sessionID string, email *string, paidAt time.Time) (*Order, error) {
	var o Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&o, "stripe_session_id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if o.Status == StatusPaid || o.Status == StatusConflict {
			return nil
		}

		status := StatusPaid
		if err := artworks.MarkSold(tx, o.ArtworkID); err != nil {
			if !errors.Is(err, artworks.ErrAlreadySold) && !errors.Is(err, artworks.ErrArtworkNotFound) {
				return err
			}
			status = StatusConflict
		}

		updates := map[string]interface{}{"status": status, "paid_at": paidAt}
		if email != nil && *email != "" {
			updates["customer_email"] = *email
		}
		if err := tx.Model(&o).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&o, o.ID).Error
	})
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("settle order failed: %w", err)
	}
	return &o, nil
}

// MarkExpired closes a pending order whose checkout session lapsed.
func (s *Store) MarkExpired(ctx context.Context, sessionID string) error {
	res := s.db.WithContext(ctx).Model(&Order{}).
		Where("stripe_session_id = ? AND status = ?", sessionID, StatusPending).
		Update("status", StatusExpired)
	if res.Error != nil {
		return fmt.Errorf("expire order failed: %w", res.Error)
	}
	return nil
}
