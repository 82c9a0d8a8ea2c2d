package artworks

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"art-showcase/internal/domain/artworks"
	"art-showcase/internal/domain/media"
	"art-showcase/internal/domain/paging"
	"art-showcase/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeImages struct {
	removed []string
}

func (f *fakeImages) Enabled() bool { return true }

func (f *fakeImages) RemoveObject(_ context.Context, key string) error {
	f.removed = append(f.removed, key)
	return nil
}

func newRouter(images ImageRemover) *gin.Engine {
	r := gin.New()
	api := r.Group("/api")
	api.GET("/artworks", ListArtworks)
	api.GET("/artworks/featured", ListFeatured)
	api.GET("/artworks/carousel", ListCarousel)
	api.GET("/artworks/stats", GetStats)
	api.GET("/artworks/materials", ListMaterials)
	api.GET("/artworks/:id", GetArtwork)
	api.POST("/admin/artworks", CreateArtwork)
	api.PATCH("/admin/artworks/:id", UpdateArtwork)
	api.DELETE("/admin/artworks/:id", DeleteArtwork(images))
	return r
}

func seedArtworks(t *testing.T, db *gorm.DB) {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []artworks.Artwork{
		{ID: "artwork-0001", Title: "Harbour at Dusk", Artist: "Mara Ilves", Price: 2400, Material: "Oil", Year: 2019, Featured: true, ImageRef: media.ImageRef{ImageURL: "https://cdn.example/1.jpg", ImageKey: "artworks/1.jpg"}},
		{ID: "artwork-0002", Title: "Blue Study", Artist: "Tomas Reyes", Price: 650, Material: "Watercolor", Year: 2021, Sold: true},
		{ID: "artwork-0003", Title: "Quiet Fields", Artist: "Mara Ilves", Price: 1800, Material: "Oil", Year: 2015},
	}
	for i := range items {
		items[i].CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, db.Create(&items[i]).Error)
	}
}

func do(r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListArtworksEnvelope(t *testing.T) {
	db := testutil.UseDB(t)
	seedArtworks(t, db)
	r := newRouter(nil)

	w := do(r, http.MethodGet, "/api/artworks?sortBy=price-low&limit=2&page=1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var page struct {
		Artworks   []artworks.Artwork `json:"artworks"`
		Pagination paging.Pagination  `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))

	require.Len(t, page.Artworks, 2)
	assert.Equal(t, "artwork-0002", page.Artworks[0].ID)
	assert.Equal(t, "artwork-0003", page.Artworks[1].ID)
	assert.Equal(t, paging.Pagination{Page: 1, Limit: 2, TotalCount: 3, TotalPages: 2, HasMore: true}, page.Pagination)
}

func TestListArtworksJSONFieldNames(t *testing.T) {
	db := testutil.UseDB(t)
	seedArtworks(t, db)

	w := do(newRouter(nil), http.MethodGet, "/api/artworks?availability=sold", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var probe struct {
		Pagination map[string]any `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &probe))
	for _, key := range []string{"page", "limit", "totalCount", "totalPages", "hasMore", "hasPrevious"} {
		assert.Contains(t, probe.Pagination, key)
	}
}

func TestListArtworksValidation(t *testing.T) {
	testutil.UseDB(t)
	r := newRouter(nil)

	for _, target := range []string{
		"/api/artworks?limit=51",
		"/api/artworks?limit=-1",
		"/api/artworks?page=-3",
		"/api/artworks?availability=reserved",
		"/api/artworks?featured=sometimes",
		"/api/artworks?page=abc",
		"/api/artworks?page=768614336404564652",
	} {
		t.Run(target, func(t *testing.T) {
			w := do(r, http.MethodGet, target, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestListArtworksUnknownSortIsAccepted(t *testing.T) {
	db := testutil.UseDB(t)
	seedArtworks(t, db)

	w := do(newRouter(nil), http.MethodGet, "/api/artworks?sortBy=shuffle", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page artworks.Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Artworks, 3)
	assert.Equal(t, "artwork-0003", page.Artworks[0].ID)
}

func TestGetArtwork(t *testing.T) {
	db := testutil.UseDB(t)
	seedArtworks(t, db)
	r := newRouter(nil)

	w := do(r, http.MethodGet, "/api/artworks/artwork-0001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var a artworks.Artwork
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
	assert.Equal(t, "Harbour at Dusk", a.Title)
	assert.Equal(t, "https://cdn.example/1.jpg", a.ImageURL)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/artworks/artwork-9999", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/artworks/short", nil).Code)
}

func TestShowcaseEndpoints(t *testing.T) {
	db := testutil.UseDB(t)
	seedArtworks(t, db)
	r := newRouter(nil)

	var featured ListResponse
	w := do(r, http.MethodGet, "/api/artworks/featured", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &featured))
	require.Len(t, featured.Artworks, 1)

	var carousel ListResponse
	w = do(r, http.MethodGet, "/api/artworks/carousel?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &carousel))
	require.Len(t, carousel.Artworks, 1)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/artworks/featured?limit=100", nil).Code)
}

func TestStatsAndMaterials(t *testing.T) {
	db := testutil.UseDB(t)
	seedArtworks(t, db)
	r := newRouter(nil)

	w := do(r, http.MethodGet, "/api/artworks/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats artworks.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Sold)
	assert.Equal(t, int64(2), stats.Available)

	w = do(r, http.MethodGet, "/api/artworks/materials", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"materials":["Oil","Watercolor"]}`, w.Body.String())
}

func TestCreateArtwork(t *testing.T) {
	testutil.UseDB(t)
	r := newRouter(nil)

	w := do(r, http.MethodPost, "/api/admin/artworks", map[string]any{
		"title":    "Evening Tide",
		"artist":   "Noor Haddad",
		"price":    1250.5,
		"year":     2024,
		"material": "Oil on linen",
		"featured": true,
		"imageUrl": "https://cdn.example/tide.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created artworks.Artwork
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, artworks.ValidID(created.ID))
	assert.Equal(t, 1250.5, created.Price)
	assert.True(t, created.Featured)

	got := do(r, http.MethodGet, "/api/artworks/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, got.Code)
}

func TestCreateArtworkValidation(t *testing.T) {
	testutil.UseDB(t)
	r := newRouter(nil)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"artist": "A", "price": 10, "year": 2020}},
		{"zero price", map[string]any{"title": "T", "artist": "A", "price": 0, "year": 2020}},
		{"negative price", map[string]any{"title": "T", "artist": "A", "price": -5, "year": 2020}},
		{"negative year", map[string]any{"title": "T", "artist": "A", "price": 10, "year": -1}},
		{"bad image url", map[string]any{"title": "T", "artist": "A", "price": 10, "year": 2020, "imageUrl": "not a url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/admin/artworks", tt.body).Code)
		})
	}
}

func TestUpdateArtworkPartial(t *testing.T) {
	db := testutil.UseDB(t)
	seedArtworks(t, db)
	r := newRouter(nil)

	w := do(r, http.MethodPatch, "/api/admin/artworks/artwork-0003", map[string]any{"price": 1999, "featured": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated artworks.Artwork
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 1999.0, updated.Price)
	assert.True(t, updated.Featured)
	assert.Equal(t, "Quiet Fields", updated.Title)
	assert.Equal(t, "Mara Ilves", updated.Artist)
	assert.Equal(t, 2015, updated.Year)
	assert.False(t, updated.Sold)
}

func TestUpdateArtworkErrors(t *testing.T) {
	db := testutil.UseDB(t)
	seedArtworks(t, db)
	r := newRouter(nil)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPatch, "/api/admin/artworks/artwork-9999", map[string]any{"title": "x"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPatch, "/api/admin/artworks/bad", map[string]any{"title": "x"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPatch, "/api/admin/artworks/artwork-0001", map[string]any{"price": -1}).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPatch, "/api/admin/artworks/artwork-0001", map[string]any{"title": ""}).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPatch, "/api/admin/artworks/artwork-0001", map[string]any{"imageUrl": "not a url"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPatch, "/api/admin/artworks/artwork-0001", map[string]any{"thumbnailUrl": "javascript alert"}).Code)
}

func TestUpdateArtworkImageURL(t *testing.T) {
	db := testutil.UseDB(t)
	seedArtworks(t, db)
	r := newRouter(nil)

	w := do(r, http.MethodPatch, "/api/admin/artworks/artwork-0001", map[string]any{
		"imageUrl":     "https://cdn.example.com/artworks/harbour.jpg",
		"thumbnailUrl": "https://cdn.example.com/artworks/harbour-thumb.jpg",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got artworks.Artwork
	require.NoError(t, db.First(&got, "id = ?", "artwork-0001").Error)
	assert.Equal(t, "https://cdn.example.com/artworks/harbour.jpg", got.ImageURL)
	assert.Equal(t, "https://cdn.example.com/artworks/harbour-thumb.jpg", got.ThumbnailURL)
}

func TestDeleteArtworkRemovesImage(t *testing.T) {
	db := testutil.UseDB(t)
	seedArtworks(t, db)
	images := &fakeImages{}
	r := newRouter(images)

	w := do(r, http.MethodDelete, "/api/admin/artworks/artwork-0001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"artworks/1.jpg"}, images.removed)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/admin/artworks/artwork-0001", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/artworks/artwork-0001", nil).Code)
}

func TestDeleteArtworkWithoutStoredImage(t *testing.T) {
	db := testutil.UseDB(t)
	seedArtworks(t, db)
	images := &fakeImages{}

	w := do(newRouter(images), http.MethodDelete, "/api/admin/artworks/artwork-0002", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, images.removed)
}

func TestStoreFailureIsGeneric(t *testing.T) {
	db := testutil.UseDB(t)
	require.NoError(t, db.Migrator().DropTable(&artworks.Artwork{}))

	w := do(newRouter(nil), http.MethodGet, "/api/artworks", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "List artworks failed", body["error"])
	assert.Contains(t, body["details"], "list artworks failed: ")
}
