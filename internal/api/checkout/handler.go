package checkout

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"art-showcase/database"
	"art-showcase/internal/domain/artworks"
	"art-showcase/internal/domain/orders"
	"art-showcase/internal/infra/payments"
	"art-showcase/internal/logging"
	"art-showcase/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

const maxWebhookBytes = 65536

// Gateway is the payment provider used to sell artworks.
type Gateway interface {
	Enabled() bool
	CreateCheckout(item payments.Item) (*payments.Session, error)
	ParseWebhook(payload []byte, signature string) (stripe.Event, error)
}

type SessionResponse struct {
	OrderID   uint   `json:"orderId"`
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

func internalError(c *gin.Context, operation string, err error) {
	body := gin.H{"error": operation + " failed"}
	if gin.Mode() != gin.ReleaseMode {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// ------------------------------
// POST /api/artworks/:id/checkout
// ------------------------------
func CreateCheckout(gw Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if !artworks.ValidID(id) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artwork id"})
			return
		}
		if gw == nil || !gw.Enabled() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payments not configured"})
			return
		}

		ctx := c.Request.Context()
		a, err := artworks.NewStore(database.DB).Get(ctx, id)
		if err != nil {
			if errors.Is(err, artworks.ErrArtworkNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
				return
			}
			internalError(c, "Create checkout", err)
			return
		}
		if a.Sold {
			c.JSON(http.StatusConflict, gin.H{"error": "Artwork already sold"})
			return
		}

		s, err := gw.CreateCheckout(payments.Item{
			ArtworkID: a.ID,
			Title:     a.Title,
			Artist:    a.Artist,
			PriceEUR:  a.Price,
			ImageURL:  a.ImageURL,
		})
		if err != nil {
			metrics.CheckoutSessions.WithLabelValues("error").Inc()
			logging.Error().Err(err).Str("artwork_id", a.ID).Msg("stripe checkout session failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Create checkout failed"})
			return
		}

		o := orders.Order{
			ArtworkID:       a.ID,
			ArtworkTitle:    a.Title,
			AmountEUR:       a.Price,
			StripeSessionID: s.ID,
			Status:          orders.StatusPending,
		}
		if err := orders.NewStore(database.DB).Create(ctx, &o); err != nil {
			internalError(c, "Create checkout", err)
			return
		}

		metrics.CheckoutSessions.WithLabelValues("created").Inc()
		logging.Info().Str("artwork_id", a.ID).Str("session_id", s.ID).Uint("order_id", o.ID).Msg("checkout session created")
		c.JSON(http.StatusCreated, SessionResponse{OrderID: o.ID, SessionID: s.ID, URL: s.URL})
	}
}

// ------------------------------
// POST /webhook/stripe
// ------------------------------
func StripeWebhook(gw Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBytes)
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
			return
		}

		if gw == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payments not configured"})
			return
		}
		event, err := gw.ParseWebhook(payload, c.GetHeader("Stripe-Signature"))
		if err != nil {
			if errors.Is(err, payments.ErrNotConfigured) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payments not configured"})
				return
			}
			logging.Warn().Err(err).Msg("stripe signature verification failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
			return
		}

		switch event.Type {
		case "checkout.session.completed", "checkout.session.async_payment_succeeded":
			session, ok := decodeSession(c, event)
			if !ok {
				return
			}
			sessionCompleted(c, session)

		case "checkout.session.expired", "checkout.session.async_payment_failed":
			session, ok := decodeSession(c, event)
			if !ok {
				return
			}
			if err := orders.NewStore(database.DB).MarkExpired(c.Request.Context(), session.ID); err != nil {
				internalError(c, "Expire order", err)
				return
			}
			metrics.CheckoutSessions.WithLabelValues("expired").Inc()
			c.JSON(http.StatusOK, gin.H{"status": "received"})

		default:
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		}
	}
}

func decodeSession(c *gin.Context, event stripe.Event) (*stripe.CheckoutSession, bool) {
	var session stripe.CheckoutSession
	if event.Data == nil || json.Unmarshal(event.Data.Raw, &session) != nil || session.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse session"})
		return nil, false
	}
	return &session, true
}

func sessionCompleted(c *gin.Context, session *stripe.CheckoutSession) {
	status := payments.NormalizeSessionStatus(string(session.Status), string(session.PaymentStatus))
	if status != orders.StatusPaid {
		// Delayed payment methods settle later through async_payment_succeeded.
		c.JSON(http.StatusOK, gin.H{"status": "pending"})
		return
	}

	var email *string
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		email = &session.CustomerDetails.Email
	}

	o, err := orders.NewStore(database.DB).MarkPaid(c.Request.Context(), session.ID, email, time.Now())
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			logging.Warn().Str("session_id", session.ID).Msg("paid session has no order")
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		// 500 makes Stripe retry.
		internalError(c, "Settle order", err)
		return
	}

	metrics.CheckoutSessions.WithLabelValues(o.Status).Inc()
	ev := logging.Info()
	if o.Status == orders.StatusConflict {
		ev = logging.Warn()
	}
	ev.Str("session_id", session.ID).Str("artwork_id", o.ArtworkID).Str("status", o.Status).Msg("checkout settled")
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
