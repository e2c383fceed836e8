package postgres

import (
	"embed"
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/phenrril/envatex/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Models lists every table owned by the service, in dependency order.
func Models() []any {
	return []any{&domain.User{}, &domain.Product{}, &domain.Quotation{}, &domain.QuotationItem{}}
}

// AutoMigrate is the development path: gorm derives the schema from the entities.
func AutoMigrate(db *gorm.DB) error {
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// RunSQLMigrations applies the embedded SQL migrations against databaseURL.
func RunSQLMigrations(databaseURL string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	v, dirty, _ := m.Version()
	zlog.Info().Uint("version", v).Bool("dirty", dirty).Msg("migraciones aplicadas")
	return nil
}

// Migrate picks SQL migrations or AutoMigrate and checks the core tables exist afterwards.
func Migrate(db *gorm.DB, databaseURL string, useSQL bool) error {
	if useSQL {
		if err := RunSQLMigrations(databaseURL); err != nil {
			return err
		}
	} else if err := AutoMigrate(db); err != nil {
		return err
	}
	for _, table := range []string{"users", "products", "quotations", "quotation_items"} {
		if !db.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}
