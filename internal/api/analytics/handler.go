package analytics

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"art-showcase/database"
	"art-showcase/internal/domain/analytics"
	"art-showcase/internal/logging"
	"art-showcase/internal/metrics"

	"github.com/gin-gonic/gin"
)

const (
	DefaultSummaryDays = 30
	maxUserAgent       = 512
)

type TrackRequest struct {
	Type      string  `json:"type" binding:"required,eventtype"`
	Path      string  `json:"path" binding:"max=512"`
	ArtworkID *string `json:"artworkId" binding:"omitempty,artworkid"`
	Referrer  string  `json:"referrer" binding:"max=512"`
	SessionID string  `json:"sessionId" binding:"max=64"`
}

type SummaryQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=365"`
}

func store() *analytics.Store {
	return analytics.NewStore(database.DB)
}

// ------------------------------
// POST /api/analytics/events
// ------------------------------
func Track(c *gin.Context) {
	var req TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ua := truncateUTF8(c.Request.UserAgent(), maxUserAgent)

	e := analytics.Event{
		Type:      req.Type,
		Path:      req.Path,
		ArtworkID: req.ArtworkID,
		Referrer:  req.Referrer,
		SessionID: req.SessionID,
		UserAgent: ua,
	}
	if err := store().Record(c.Request.Context(), &e); err != nil {
		logging.Error().Err(err).Str("type", req.Type).Msg("analytics event dropped")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Track event failed"})
		return
	}

	metrics.AnalyticsEvents.WithLabelValues(req.Type).Inc()
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	s = strings.ToValidUTF8(s, "")
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// GET /api/admin/analytics/summary
func Summary(c *gin.Context) {
	var q SummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if q.Days == 0 {
		q.Days = DefaultSummaryDays
	}

	since := time.Now().AddDate(0, 0, -q.Days)
	summary, err := store().Summary(c.Request.Context(), since)
	if err != nil {
		body := gin.H{"error": "Analytics summary failed"}
		if gin.Mode() != gin.ReleaseMode {
			body["details"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
		return
	}
	c.JSON(http.StatusOK, summary)
}
