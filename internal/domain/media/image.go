package media

import "strings"

// ImageRef points at an artwork image held in object storage.
type ImageRef struct {
	ImageURL     string `gorm:"column:image_url" json:"imageUrl,omitempty"`
	ImageKey     string `gorm:"column:image_key" json:"imageKey,omitempty"`
	ThumbnailURL string `gorm:"column:thumbnail_url" json:"thumbnailUrl,omitempty"`
}

// StoredKey returns the object-storage key, or "" when the image lives elsewhere.
func (r ImageRef) StoredKey() string {
	return strings.TrimSpace(r.ImageKey)
}
