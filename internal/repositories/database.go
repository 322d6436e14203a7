package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/lib/pq"
	"github.com/marketbase/catalog-api/internal/config"
	"go.opentelemetry.io/otel/attribute"
)

type Repository struct {
	DB *sql.DB
}

func New(cfg *config.Config) (*Repository, UserRepository, ProductRepository, CategoryRepository, error) {

	// otelsql wraps the pq driver so every query carries a span
	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")))
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := initSchema(db); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	// Initialize repositories
	postgresInstance := &Repository{DB: db}
	userRepo := NewUserRepo(db)
	productRepo := NewProductRepo(db)
	categoryRepo := NewCategoryRepo(db)

	return postgresInstance, userRepo, productRepo, categoryRepo, nil
}

// initSchema runs the one-time table registration. Every statement is
// idempotent, so restarting against an existing database is a no-op.
func initSchema(db *sql.DB) error {

	schema := `
	CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(100) UNIQUE NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		category_id UUID REFERENCES categories(id),
		name VARCHAR(200) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (price >= 0),
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		inventory_location VARCHAR(120) NOT NULL DEFAULT '',
		inventory_status VARCHAR(60) NOT NULL DEFAULT '',
		variants JSONB NOT NULL DEFAULT '[]'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_products_category_id ON products (category_id);
	CREATE INDEX IF NOT EXISTS idx_products_name ON products (LOWER(name));
	CREATE INDEX IF NOT EXISTS idx_products_variants ON products USING GIN (variants);

	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'customer',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`

	_, err := db.Exec(schema)

	return err
}

// IsDuplicateKey reports whether err is a Postgres unique-constraint
// violation (class 23505), e.g. a duplicate category name.
func IsDuplicateKey(err error) bool {
	var pqErr *pq.Error

	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	return false
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
