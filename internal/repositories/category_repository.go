package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	models "github.com/marketbase/catalog-api/internal/models"
	"github.com/marketbase/catalog-api/internal/utils"
)

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO categories(name, description)
		VALUES($1, $2)
		RETURNING id, created_at, updated_at`

	return r.DB.QueryRowContext(dbCtx, query, category.Name, category.Description).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)

}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	category := &models.Category{}

	query := `SELECT id, name, description, created_at, updated_at
			  FROM categories
			  WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return category, nil

}

func (r *categoryRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, description, created_at, updated_at
			  FROM categories
			  ORDER BY name ASC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var categories []*models.Category

	for rows.Next() {
		category := &models.Category{}

		if err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}

		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil

}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE categories SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at`

	return r.DB.QueryRowContext(dbCtx, query, category.Name, category.Description, category.ID).Scan(&category.UpdatedAt)

}

// DeleteCategory detaches every referencing product and removes the category
// in one transaction, so no product is ever left with a dangling reference.
func (r *categoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	detachQuery := `UPDATE products SET category_id = NULL, updated_at = NOW() WHERE category_id = $1`

	if _, err := tx.ExecContext(dbCtx, detachQuery, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(dbCtx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()

}
