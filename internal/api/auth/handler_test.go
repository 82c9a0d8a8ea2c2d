package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"art-showcase/config"
	"art-showcase/internal/domain/users"
	"art-showcase/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withSecret(t *testing.T) {
	t.Helper()
	prev := config.JWT_SECRET
	config.JWT_SECRET = "test-secret"
	t.Cleanup(func() { config.JWT_SECRET = prev })
}

func login(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEnsureBootstrapAdmin(t *testing.T) {
	db := testutil.UseDB(t)

	require.NoError(t, EnsureBootstrapAdmin(db, "", ""))
	assert.Error(t, EnsureBootstrapAdmin(db, "owner@gallery.test", "short"))

	require.NoError(t, EnsureBootstrapAdmin(db, " Owner@Gallery.test ", "s3cretpass"))
	require.NoError(t, EnsureBootstrapAdmin(db, "owner@gallery.test", "n3wsecret!"))

	var all []users.User
	require.NoError(t, db.Find(&all).Error)
	require.Len(t, all, 1)
	assert.Equal(t, "owner@gallery.test", all[0].Email)
	assert.Equal(t, users.RoleAdmin, all[0].Role)
	assert.Equal(t, users.ProviderLocal, all[0].AuthProvider)
}

func TestLogin(t *testing.T) {
	db := testutil.UseDB(t)
	withSecret(t)
	require.NoError(t, EnsureBootstrapAdmin(db, "owner@gallery.test", "s3cretpass"))

	r := gin.New()
	r.POST("/auth/login", Login)

	w := login(r, `{"email":"owner@gallery.test","password":"s3cretpass"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, users.RoleAdmin, resp.Role)

	tok, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, "owner@gallery.test", claims["email"])
	assert.Equal(t, "admin", claims["role"])

	var u users.User
	require.NoError(t, db.First(&u).Error)
	assert.NotNil(t, u.LastLoginAt)

	assert.Equal(t, http.StatusUnauthorized, login(r, `{"email":"owner@gallery.test","password":"wrongpass1"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, login(r, `{"email":"nobody@gallery.test","password":"s3cretpass"}`).Code)
	assert.Equal(t, http.StatusBadRequest, login(r, `{"email":"not-an-email"}`).Code)
}

func TestMe(t *testing.T) {
	db := testutil.UseDB(t)
	require.NoError(t, EnsureBootstrapAdmin(db, "owner@gallery.test", "s3cretpass"))
	var u users.User
	require.NoError(t, db.First(&u).Error)

	r := gin.New()
	r.GET("/me", func(c *gin.Context) { c.Set("user_id", u.ID) }, Me)
	r.GET("/ghost", func(c *gin.Context) { c.Set("user_id", uint(999)) }, Me)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"owner@gallery.test"`)
	assert.NotContains(t, w.Body.String(), "password")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ghost", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpsertGoogleUser(t *testing.T) {
	db := testutil.UseDB(t)
	admins := []string{"curator@gallery.test"}

	u, err := upsertGoogleUser(db, &googleIDClaims{Sub: "g-1", Email: "Curator@Gallery.test", Name: "Curator"}, admins)
	require.NoError(t, err)
	assert.Equal(t, users.RoleAdmin, u.Role)
	assert.Equal(t, "curator@gallery.test", u.Email)

	v, err := upsertGoogleUser(db, &googleIDClaims{Sub: "g-2", Email: "visitor@example.com"}, admins)
	require.NoError(t, err)
	assert.Equal(t, users.RoleViewer, v.Role)

	// dropped from the allow-list
	again, err := upsertGoogleUser(db, &googleIDClaims{Sub: "g-1", Email: "curator@gallery.test"}, nil)
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, users.RoleViewer, again.Role)

	// linking google to the local bootstrap admin keeps it admin
	require.NoError(t, EnsureBootstrapAdmin(db, "owner@gallery.test", "s3cretpass"))
	owner, err := upsertGoogleUser(db, &googleIDClaims{Sub: "g-3", Email: "owner@gallery.test"}, nil)
	require.NoError(t, err)
	assert.Equal(t, users.RoleAdmin, owner.Role)
	assert.Equal(t, users.ProviderLocal, owner.AuthProvider)
	require.NotNil(t, owner.GoogleSub)
	assert.Equal(t, "g-3", *owner.GoogleSub)

	var count int64
	db.Model(&users.User{}).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestGoogleNotConfigured(t *testing.T) {
	prev := config.GOOGLE_CLIENT_ID
	config.GOOGLE_CLIENT_ID = ""
	t.Cleanup(func() { config.GOOGLE_CLIENT_ID = prev })

	r := gin.New()
	r.GET("/auth/google", GoogleStart)
	r.GET("/auth/google/callback", GoogleCallback)

	for _, path := range []string{"/auth/google", "/auth/google/callback?code=x&state=y"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
}

func TestGoogleStartSetsState(t *testing.T) {
	prevID, prevSecret, prevURL := config.GOOGLE_CLIENT_ID, config.GOOGLE_CLIENT_SECRET, config.GOOGLE_REDIRECT_URL
	config.GOOGLE_CLIENT_ID, config.GOOGLE_CLIENT_SECRET, config.GOOGLE_REDIRECT_URL = "cid", "csecret", "http://localhost:8080/auth/google/callback"
	t.Cleanup(func() {
		config.GOOGLE_CLIENT_ID, config.GOOGLE_CLIENT_SECRET, config.GOOGLE_REDIRECT_URL = prevID, prevSecret, prevURL
	})

	r := gin.New()
	r.GET("/auth/google", GoogleStart)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/google", nil))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "accounts.google.com")
	assert.Contains(t, w.Header().Get("Location"), "client_id=cid")
	assert.Contains(t, w.Header().Get("Set-Cookie"), stateCookie+"=")
}
