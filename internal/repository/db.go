package repository

import (
	"fmt"
	"time"

	"github.com/BuildMate/matgate/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/jmoiron/sqlx"
)

func NewDB(cfg *config.Config) (*sqlx.DB, error) {
	if cfg == nil || cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database dsn is empty")
	}

	db, err := sqlx.Connect("pgx", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(1 * time.Hour)

	return db, nil
}
