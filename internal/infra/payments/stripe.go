// Package payments wraps the Stripe calls used to sell an artwork.
package payments

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/webhook"
)

var ErrNotConfigured = errors.New("payments not configured")

type Config struct {
	SecretKey     string
	WebhookSecret string
	// AppURL is the frontend origin the buyer returns to.
	AppURL string
}

// Item is what the buyer pays for.
type Item struct {
	ArtworkID string
	Title     string
	Artist    string
	PriceEUR  float64
	ImageURL  string
}

type Session struct {
	ID  string
	URL string
}

type Client struct {
	cfg Config
}

func NewClient(cfg Config) *Client {
	if cfg.AppURL == "" {
		cfg.AppURL = "http://localhost:5173"
	}
	if cfg.SecretKey != "" {
		stripe.Key = cfg.SecretKey
	}
	return &Client{cfg: cfg}
}

func (c *Client) Enabled() bool {
	return c != nil && c.cfg.SecretKey != ""
}

// AmountCents converts a EUR price to Stripe's smallest currency unit.
func AmountCents(priceEUR float64) int64 {
	return int64(math.Round(priceEUR * 100))
}

// CheckoutParams builds a one-off payment session for item.
func (c *Client) CheckoutParams(item Item) *stripe.CheckoutSessionParams {
	name := item.Title
	if item.Artist != "" {
		name = fmt.Sprintf("%s by %s", item.Title, item.Artist)
	}

	product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(name),
	}
	if item.ImageURL != "" {
		product.Images = []*string{stripe.String(item.ImageURL)}
	}

	appURL := strings.TrimRight(c.cfg.AppURL, "/")
	return &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(appURL + "/artworks/" + item.ArtworkID + "?purchase=success"),
		CancelURL:  stripe.String(appURL + "/artworks/" + item.ArtworkID + "?purchase=canceled"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(string(stripe.CurrencyEUR)),
					UnitAmount:  stripe.Int64(AmountCents(item.PriceEUR)),
					ProductData: product,
				},
				Quantity: stripe.Int64(1),
			},
		},
		ClientReferenceID: stripe.String(item.ArtworkID),
		Metadata: map[string]string{
			"artwork_id": item.ArtworkID,
		},
	}
}

func (c *Client) CreateCheckout(item Item) (*Session, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}

	s, err := checkoutsession.New(c.CheckoutParams(item))
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &Session{ID: s.ID, URL: s.URL}, nil
}

// ParseWebhook verifies the Stripe-Signature header and decodes the event.
func (c *Client) ParseWebhook(payload []byte, signature string) (stripe.Event, error) {
	if c == nil || c.cfg.WebhookSecret == "" {
		return stripe.Event{}, ErrNotConfigured
	}
	return webhook.ConstructEventWithOptions(
		payload,
		signature,
		c.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
}

// NormalizeSessionStatus folds Checkout session/payment states into
// pending|paid|expired.
func NormalizeSessionStatus(status, paymentStatus string) string {
	switch strings.TrimSpace(status) {
	case "expired":
		return "expired"
	case "complete":
		if strings.TrimSpace(paymentStatus) == "paid" || strings.TrimSpace(paymentStatus) == "no_payment_required" {
			return "paid"
		}
		return "pending"
	default:
		return "pending"
	}
}
