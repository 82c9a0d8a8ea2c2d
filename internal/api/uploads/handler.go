package uploads

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"art-showcase/internal/logging"
	"art-showcase/internal/metrics"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const MaxImageBytes = 10 << 20

// allowed maps accepted content types to the extension used in object keys.
var allowed = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageStore is the object storage the upload handler writes to.
type ImageStore interface {
	Enabled() bool
	PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}

type UploadResponse struct {
	ImageKey string `json:"image_key"`
	ImageURL string `json:"image_url"`
}

// ------------------------------
// POST /api/admin/uploads
// ------------------------------
func UploadImage(images ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if images == nil || !images.Enabled() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage not configured"})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageBytes+1<<20)

		fh, err := c.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				reject(c, http.StatusRequestEntityTooLarge, "Image exceeds 10 MiB")
				return
			}
			reject(c, http.StatusBadRequest, "Missing file field")
			return
		}
		if fh.Size > MaxImageBytes {
			reject(c, http.StatusRequestEntityTooLarge, "Image exceeds 10 MiB")
			return
		}

		f, err := fh.Open()
		if err != nil {
			reject(c, http.StatusBadRequest, "Unreadable upload")
			return
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, MaxImageBytes+1))
		if err != nil {
			reject(c, http.StatusBadRequest, "Unreadable upload")
			return
		}
		if len(data) > MaxImageBytes {
			reject(c, http.StatusRequestEntityTooLarge, "Image exceeds 10 MiB")
			return
		}

		mtype := mimetype.Detect(data)
		ext, ok := allowed[mtype.String()]
		if !ok {
			reject(c, http.StatusUnsupportedMediaType, "Unsupported image type "+mtype.String())
			return
		}

		key := "artworks/" + uuid.NewString() + ext
		if err := images.PutObject(c.Request.Context(), key, bytes.NewReader(data), int64(len(data)), mtype.String()); err != nil {
			metrics.ImageUploads.WithLabelValues("error").Inc()
			logging.Error().Err(err).Str("image_key", key).Msg("image upload failed")
			body := gin.H{"error": "Upload image failed"}
			if gin.Mode() != gin.ReleaseMode {
				body["details"] = err.Error()
			}
			c.JSON(http.StatusInternalServerError, body)
			return
		}

		metrics.ImageUploads.WithLabelValues("stored").Inc()
		logging.Info().Str("image_key", key).Int("bytes", len(data)).Str("admin", c.GetString("email")).Msg("image uploaded")
		c.JSON(http.StatusCreated, UploadResponse{ImageKey: key, ImageURL: images.PublicURL(key)})
	}
}

func reject(c *gin.Context, status int, msg string) {
	metrics.ImageUploads.WithLabelValues("rejected").Inc()
	c.JSON(status, gin.H{"error": msg})
}
