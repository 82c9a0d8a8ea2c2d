package users

import (
	"strings"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"

	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User is a back-office identity. Visitors browsing the gallery never sign in.
type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string  `gorm:"type:varchar(20);not null;default:'viewer'"`
	LastLoginAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RoleForEmail grants the admin role to emails on the allow-list.
func RoleForEmail(email string, admins []string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range admins {
		if strings.ToLower(strings.TrimSpace(a)) == email && email != "" {
			return RoleAdmin
		}
	}
	return RoleViewer
}
