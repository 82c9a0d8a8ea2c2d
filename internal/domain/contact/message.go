package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"art-showcase/internal/domain/paging"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("contact message not found")

// Message is a contact form submission.
type Message struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"not null" json:"name"`
	Email     string  `gorm:"not null;index" json:"email"`
	Subject   string  `json:"subject"`
	Body      string  `gorm:"type:text;not null" json:"message"`
	ArtworkID *string `gorm:"type:varchar(36);index" json:"artworkId,omitempty"`
	ClientIP  string  `json:"-"`
	Read      bool    `gorm:"not null;default:false" json:"read"`
	Forwarded bool    `gorm:"not null;default:false" json:"forwarded"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (Message) TableName() string {
	return "contact_messages"
}

type Page struct {
	Messages   []Message         `json:"messages"`
	Pagination paging.Pagination `json:"pagination"`
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, m *Message) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("store contact message failed: %w", err)
	}
	return nil
}

// List returns messages newest first. unreadOnly hides messages already read.
func (s *Store) List(ctx context.Context, page, limit int, unreadOnly bool) (*Page, error) {
	q := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&Message{})
		if unreadOnly {
			q = q.Where("read = ?", false)
		}
		return q
	}

	var total int64
	if err := q().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("list contact messages failed: %w", err)
	}

	msgs := []Message{}
	if err := q().
		Order("created_at DESC, id DESC").
		Offset(paging.Offset(page, limit)).
		Limit(limit).
		Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("list contact messages failed: %w", err)
	}

	return &Page{Messages: msgs, Pagination: paging.New(page, limit, total)}, nil
}

func (s *Store) MarkRead(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&Message{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return fmt.Errorf("mark contact message read failed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (s *Store) MarkForwarded(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Model(&Message{}).Where("id = ?", id).Update("forwarded", true).Error
}
