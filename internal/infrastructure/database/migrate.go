package database

import (
	"embed"
	"errors"
	"fmt"

	"home-service-booking/config"
	"home-service-booking/internal/domain/entity"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate brings the schema up to date. PostgreSQL runs the versioned SQL
// migrations; SQLite is migrated from the entity definitions.
func Migrate(db *gorm.DB, driver string) error {
	if driver == config.DBDriverPostgres {
		return migratePostgres(db)
	}
	return AutoMigrate(db)
}

// AutoMigrate creates the tables from the entity definitions
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&entity.Provider{}, &entity.Booking{}, &entity.BookingEvent{})
}

func migratePostgres(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logrus.Infof("Database schema at version %d (dirty=%t)", version, dirty)
	return nil
}
