package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"art-showcase/config"
	"art-showcase/database"
	"art-showcase/internal/domain/users"
	"art-showcase/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// EnsureBootstrapAdmin creates or refreshes the local admin account from
// ADMIN_EMAIL / ADMIN_PASSWORD. Empty credentials disable local login.
func EnsureBootstrapAdmin(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	if !isPasswordStrong(password) {
		return errors.New("ADMIN_PASSWORD must be at least 8 characters with letters and numbers")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hash := string(hashed)

	var user users.User
	err = db.Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = users.User{
			Name:         "Administrator",
			Email:        email,
			Password:     &hash,
			AuthProvider: users.ProviderLocal,
			Role:         users.RoleAdmin,
		}
		return db.Create(&user).Error
	case err != nil:
		return err
	default:
		return db.Model(&user).Updates(map[string]interface{}{
			"password": hash,
			"role":     users.RoleAdmin,
		}).Error
	}
}

// ------------------------------
// POST /auth/login
// ------------------------------
func Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if user.Password == nil || *user.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "This account uses Google sign-in"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
		logging.Warn().Str("email", email).Str("ip", c.ClientIP()).Msg("failed admin login")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	touchLastLogin(&user)

	tokenString, err := issueAppJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString, "role": user.Role})
}

// GET /api/admin/me
func Me(c *gin.Context) {
	var user users.User
	if err := database.DB.First(&user, c.GetUint("user_id")).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"role":          user.Role,
		"auth_provider": user.AuthProvider,
		"last_login_at": user.LastLoginAt,
	})
}

func issueAppJWT(user users.User) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})
	return t.SignedString([]byte(config.JWT_SECRET))
}

func touchLastLogin(user *users.User) {
	now := time.Now()
	if err := database.DB.Model(user).Update("last_login_at", now).Error; err != nil {
		logging.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record login time")
		return
	}
	user.LastLoginAt = &now
}
