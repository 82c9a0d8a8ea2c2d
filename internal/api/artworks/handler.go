package artworks

import (
	"context"
	"errors"
	"net/http"

	"art-showcase/database"
	"art-showcase/internal/domain/artworks"
	"art-showcase/internal/logging"

	"github.com/gin-gonic/gin"
)

// ImageRemover deletes stored artwork images.
type ImageRemover interface {
	Enabled() bool
	RemoveObject(ctx context.Context, key string) error
}

func store() *artworks.Store {
	return artworks.NewStore(database.DB)
}

// pathID reads :id and answers 400 when it is not a well-formed artwork id.
func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !artworks.ValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artwork id"})
		return "", false
	}
	return id, true
}

func respondError(c *gin.Context, operation string, err error) {
	switch {
	case errors.Is(err, artworks.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artwork id"})
	case errors.Is(err, artworks.ErrArtworkNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
	default:
		body := gin.H{"error": operation + " failed"}
		if gin.Mode() != gin.ReleaseMode {
			body["details"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}

// ------------------------------
// GET /api/artworks
// ------------------------------
func ListArtworks(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params, err := q.Params().Normalize()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := store().List(c.Request.Context(), params)
	if err != nil {
		respondError(c, "List artworks", err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GET /api/artworks/:id
func GetArtwork(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	a, err := store().Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Get artwork", err)
		return
	}

	c.JSON(http.StatusOK, a)
}

// GET /api/artworks/featured
func ListFeatured(c *gin.Context) {
	var q ShowcaseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := store().Featured(c.Request.Context(), q.Limit)
	if err != nil {
		respondError(c, "List featured artworks", err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{Artworks: items})
}

// GET /api/artworks/carousel
func ListCarousel(c *gin.Context) {
	var q ShowcaseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := store().Carousel(c.Request.Context(), q.Limit)
	if err != nil {
		respondError(c, "List carousel artworks", err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{Artworks: items})
}

// GET /api/artworks/stats
func GetStats(c *gin.Context) {
	stats, err := store().Stats(c.Request.Context())
	if err != nil {
		respondError(c, "Artwork stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/artworks/materials
func ListMaterials(c *gin.Context) {
	materials, err := store().Materials(c.Request.Context())
	if err != nil {
		respondError(c, "List materials", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"materials": materials})
}

// ------------------------------
// POST /api/admin/artworks
// ------------------------------
func CreateArtwork(c *gin.Context) {
	var req CreateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a := req.Artwork()
	if err := store().Create(c.Request.Context(), a); err != nil {
		respondError(c, "Create artwork", err)
		return
	}

	logging.Info().Str("artwork_id", a.ID).Str("admin", c.GetString("email")).Msg("artwork created")
	c.JSON(http.StatusCreated, a)
}

// ------------------------------
// PATCH /api/admin/artworks/:id
// ------------------------------
func UpdateArtwork(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := store().Update(c.Request.Context(), id, req.Patch())
	if err != nil {
		respondError(c, "Update artwork", err)
		return
	}

	logging.Info().Str("artwork_id", a.ID).Str("admin", c.GetString("email")).Msg("artwork updated")
	c.JSON(http.StatusOK, a)
}

// ------------------------------
// DELETE /api/admin/artworks/:id
// ------------------------------
func DeleteArtwork(images ImageRemover) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		a, err := store().Delete(c.Request.Context(), id)
		if err != nil {
			respondError(c, "Delete artwork", err)
			return
		}

		// The row is gone either way; a leftover object is only logged.
		if key := a.StoredKey(); key != "" && images != nil && images.Enabled() {
			if err := images.RemoveObject(c.Request.Context(), key); err != nil {
				logging.Warn().Err(err).Str("artwork_id", id).Str("image_key", key).Msg("failed to remove artwork image")
			}
		}

		logging.Info().Str("artwork_id", id).Str("admin", c.GetString("email")).Msg("artwork deleted")
		c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
	}
}
