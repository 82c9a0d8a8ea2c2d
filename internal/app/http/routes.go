package routes

import (
	"net/http"
	"time"

	adminapi "art-showcase/internal/api/admin"
	analyticsapi "art-showcase/internal/api/analytics"
	artworksapi "art-showcase/internal/api/artworks"
	authapi "art-showcase/internal/api/auth"
	checkoutapi "art-showcase/internal/api/checkout"
	contactapi "art-showcase/internal/api/contact"
	uploadsapi "art-showcase/internal/api/uploads"
	"art-showcase/internal/api/validation"
	"art-showcase/internal/app/http/middleware"
	"art-showcase/internal/infra/mailer"
	"art-showcase/internal/infra/payments"
	"art-showcase/internal/infra/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the external clients handlers need. Nil or disabled clients make
// the matching endpoints answer 503.
type Deps struct {
	Storage      *storage.Client
	Payments     *payments.Client
	Mailer       *mailer.SMTP
	ContactInbox string
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	validation.Register()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/webhook/stripe", checkoutapi.StripeWebhook(deps.Payments))

	r.GET("/auth/google", authapi.GoogleStart)
	r.GET("/auth/google/callback", authapi.GoogleCallback)
	r.POST("/auth/login", middleware.RateLimit(10, 5), authapi.Login)

	api := r.Group("/api")
	api.GET("/artworks", artworksapi.ListArtworks)
	api.GET("/artworks/featured", artworksapi.ListFeatured)
	api.GET("/artworks/carousel", artworksapi.ListCarousel)
	api.GET("/artworks/stats", artworksapi.GetStats)
	api.GET("/artworks/materials", artworksapi.ListMaterials)
	api.GET("/artworks/:id", artworksapi.GetArtwork)
	api.POST("/artworks/:id/checkout", middleware.RateLimit(10, 5), checkoutapi.CreateCheckout(deps.Payments))

	api.POST("/contact",
		middleware.RateLimit(5, 3),
		middleware.SanitizeAndCleanInputMiddleware(),
		contactapi.SubmitMessage(deps.Mailer, deps.ContactInbox),
	)
	api.POST("/analytics/events", middleware.RateLimit(120, 30), analyticsapi.Track)

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/me", authapi.Me)
	admin.GET("/dashboard", adminapi.Dashboard)
	admin.GET("/users", adminapi.ListUsers)
	admin.GET("/orders", adminapi.ListOrders)

	admin.POST("/artworks", artworksapi.CreateArtwork)
	admin.PATCH("/artworks/:id", artworksapi.UpdateArtwork)
	admin.DELETE("/artworks/:id", artworksapi.DeleteArtwork(deps.Storage))
	admin.POST("/uploads", uploadsapi.UploadImage(deps.Storage))

	admin.GET("/contact", contactapi.ListMessages)
	admin.PATCH("/contact/:id/read", contactapi.MarkRead)

	admin.GET("/analytics/summary", analyticsapi.Summary)
}
