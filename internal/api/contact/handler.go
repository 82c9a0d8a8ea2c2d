package contact

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"art-showcase/database"
	"art-showcase/internal/domain/contact"
	"art-showcase/internal/domain/paging"
	"art-showcase/internal/logging"
	"art-showcase/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Mailer forwards stored messages to the gallery inbox.
type Mailer interface {
	Enabled() bool
	Send(to, replyTo, subject, body string) error
}

type SubmitRequest struct {
	Name      string  `json:"name" binding:"required,max=120"`
	Email     string  `json:"email" binding:"required,email,max=254"`
	Subject   string  `json:"subject" binding:"max=200"`
	Message   string  `json:"message" binding:"required,min=10,max=5000"`
	ArtworkID *string `json:"artworkId" binding:"omitempty,artworkid"`
}

type ListQuery struct {
	Page   int  `form:"page" binding:"omitempty,min=1"`
	Limit  int  `form:"limit" binding:"omitempty,min=1,max=50"`
	Unread bool `form:"unread"`
}

func store() *contact.Store {
	return contact.NewStore(database.DB)
}

// ------------------------------
// POST /api/contact
// ------------------------------
func SubmitMessage(mail Mailer, inbox string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		msg := contact.Message{
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.TrimSpace(req.Email),
			Subject:   strings.TrimSpace(req.Subject),
			Body:      strings.TrimSpace(req.Message),
			ArtworkID: req.ArtworkID,
			ClientIP:  c.ClientIP(),
		}
		if err := store().Create(c.Request.Context(), &msg); err != nil {
			logging.Error().Err(err).Msg("contact message not stored")
			body := gin.H{"error": "Send message failed"}
			if gin.Mode() != gin.ReleaseMode {
				body["details"] = err.Error()
			}
			c.JSON(http.StatusInternalServerError, body)
			return
		}
		metrics.ContactMessages.Inc()

		if mail != nil && mail.Enabled() && inbox != "" {
			if err := mail.Send(inbox, msg.Email, forwardSubject(msg), forwardBody(msg)); err != nil {
				logging.Warn().Err(err).Uint("message_id", msg.ID).Msg("contact message not forwarded")
			} else if err := store().MarkForwarded(c.Request.Context(), msg.ID); err != nil {
				logging.Warn().Err(err).Uint("message_id", msg.ID).Msg("failed to flag message as forwarded")
			} else {
				msg.Forwarded = true
			}
		}

		logging.Info().Uint("message_id", msg.ID).Bool("forwarded", msg.Forwarded).Msg("contact message received")
		c.JSON(http.StatusCreated, gin.H{"id": msg.ID, "status": "received"})
	}
}

func forwardSubject(m contact.Message) string {
	if m.Subject != "" {
		return "[Gallery] " + m.Subject
	}
	return "[Gallery] Message from " + m.Name
}

func forwardBody(m contact.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\n", m.Name, m.Email)
	if m.ArtworkID != nil {
		fmt.Fprintf(&b, "Artwork: %s\n", *m.ArtworkID)
	}
	b.WriteString("\n")
	b.WriteString(m.Body)
	return b.String()
}

// ------------------------------
// GET /api/admin/contact
// ------------------------------
func ListMessages(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 20
	}
	if !paging.InRange(q.Page, q.Limit) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page is out of range"})
		return
	}

	page, err := store().List(c.Request.Context(), q.Page, q.Limit, q.Unread)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "List contact messages failed"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// PATCH /api/admin/contact/:id/read
func MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
		return
	}

	if err := store().MarkRead(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, contact.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Mark message read failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "read": true})
}
