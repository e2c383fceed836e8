package postgres

import (
	"context"
	"fmt"
	"time"

	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to Postgres, retrying while the database container starts up.
func Open(dsn string, debug bool) (*gorm.DB, error) {
	level := logger.Silent
	if debug {
		level = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(level)}

	var db *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		zlog.Warn().Err(err).Int("attempt", i+1).Msg("reintentando conexión a la base de datos")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := Ping(context.Background(), db); err != nil {
		return nil, err
	}
	return db, nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	return nil
}
