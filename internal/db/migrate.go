package db

import (
	"embed"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/catalog/*.sql migrations/orders/*.sql
var migrationsFS embed.FS

const (
	CatalogMigrations = "catalog"
	OrderMigrations   = "orders"
)

// RunMigrations applies all pending migrations for one service's schema,
// using the embedded SQL files under migrations/<dir>.
func RunMigrations(dsn, dir string, logger *log.Logger) error {
	// Open a separate connection for migrations
	db, err := Open(dsn)
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	sourceDriver, err := iofs.New(migrationsFS, "migrations/"+dir)
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		logger.Printf("migrations: at version %d (dirty)", version)
	} else {
		logger.Printf("migrations: at version %d", version)
	}

	return nil
}
