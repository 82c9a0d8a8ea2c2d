package database

import (
	"fmt"
	"strings"

	"art-showcase/internal/domain/analytics"
	"art-showcase/internal/domain/artworks"
	"art-showcase/internal/domain/contact"
	"art-showcase/internal/domain/orders"
	"art-showcase/internal/domain/users"
	"art-showcase/internal/logging"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Open connects to the database named by url.
// Supported:
//   - postgres://... or postgresql://...
//   - sqlite:<dsn>, e.g. sqlite:./showcase.db or sqlite::memory:
func Open(url string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: newGormLogger()}

	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return gorm.Open(postgres.Open(url), cfg)
	case strings.HasPrefix(url, "sqlite:"):
		dsn := strings.TrimPrefix(url, "sqlite:")
		if dsn == "" {
			dsn = "./showcase.db"
		}
		db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: sqliteDriverName(), DSN: dsn}), cfg)
		if err != nil {
			return nil, err
		}
		// SQLite allows one writer; a single connection also keeps :memory: databases alive.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported db scheme: %s", url)
	}
}

// Migrate applies the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&artworks.Artwork{},
		&users.User{},
		&contact.Message{},
		&analytics.Event{},
		&orders.Order{},
	)
}

func InitDB(url string) {
	db, err := Open(url)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("auto-migrate failed")
	}

	DB = db
	logging.Info().Str("dialect", db.Dialector.Name()).Msg("database connected and migrated")
}
