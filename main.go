package main

import (
	"context"
	"os"
	"time"

	"art-showcase/config"
	"art-showcase/database"
	authapi "art-showcase/internal/api/auth"
	routes "art-showcase/internal/app/http"
	"art-showcase/internal/app/http/middleware"
	"art-showcase/internal/infra/mailer"
	"art-showcase/internal/infra/payments"
	"art-showcase/internal/infra/storage"
	"art-showcase/internal/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()
	logging.Init(logging.Config{Level: config.LOG_LEVEL, Format: config.LOG_FORMAT, Output: os.Stdout})

	if config.GIN_MODE != "" {
		gin.SetMode(config.GIN_MODE)
	}

	database.InitDB(config.DB_URL)
	if err := authapi.EnsureBootstrapAdmin(database.DB, config.ADMIN_EMAIL, config.ADMIN_PASSWORD); err != nil {
		logging.Fatal().Err(err).Msg("bootstrap admin")
	}

	images, err := storage.NewClient(storage.Config{
		Endpoint:        config.MINIO_ENDPOINT,
		AccessKeyID:     config.MINIO_ACCESS_KEY,
		SecretAccessKey: config.MINIO_SECRET_KEY,
		Bucket:          config.MINIO_BUCKET,
		UseSSL:          config.MINIO_USE_SSL,
		PublicURL:       config.MINIO_PUBLIC_URL,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("image storage")
	}
	if images.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := images.EnsureBucket(ctx); err != nil {
			logging.Warn().Err(err).Str("bucket", config.MINIO_BUCKET).Msg("image bucket not ready")
		}
		cancel()
	} else {
		logging.Warn().Msg("MINIO_ENDPOINT not set; image uploads disabled")
	}

	pay := payments.NewClient(payments.Config{
		SecretKey:     config.STRIPE_SECRET_KEY,
		WebhookSecret: config.STRIPE_WEBHOOK_SECRET,
		AppURL:        config.APP_URL,
	})
	if !pay.Enabled() {
		logging.Warn().Msg("STRIPE_SECRET_KEY not set; checkout disabled")
	}

	mail := mailer.NewSMTP(mailer.Config{
		Host:     config.SMTP_HOST,
		Port:     config.SMTP_PORT,
		From:     config.SMTP_FROM,
		Password: config.SMTP_PASSWORD,
	})

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.CORS_ORIGINS,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Storage:      images,
		Payments:     pay,
		Mailer:       mail,
		ContactInbox: config.CONTACT_INBOX,
	})

	logging.Info().Str("port", config.PORT).Str("mode", gin.Mode()).Msg("art showcase api listening")
	if err := r.Run(":" + config.PORT); err != nil {
		logging.Fatal().Err(err).Msg("server stopped")
	}
}
