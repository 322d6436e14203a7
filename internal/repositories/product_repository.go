package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	models "github.com/marketbase/catalog-api/internal/models"
	"github.com/marketbase/catalog-api/internal/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
	ListAllProducts(ctx context.Context) ([]*models.Product, error)
	ListInventory(ctx context.Context) ([]models.InventoryItem, error)
	SearchProducts(ctx context.Context, filter *models.SearchFilter) ([]*models.Product, int, error)
	SuggestNames(ctx context.Context, term string, limit int) ([]models.Suggestion, error)
	FindLowStock(ctx context.Context, threshold int) ([]*models.Product, error)
	FindByVariant(ctx context.Context, size, color string, inStock bool) ([]*models.Product, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// productSelect is the shared column list for full-product reads, category
// name resolved through a left join.
func productSelect() sq.SelectBuilder {
	return psql.Select(
		"p.id", "p.category_id", "p.name", "p.description", "p.price",
		"p.stock", "p.inventory_location", "p.inventory_status", "p.variants",
		"p.created_at", "p.updated_at",
		"c.id", "c.name", "c.description",
	).From("products p").LeftJoin("categories c ON p.category_id = c.id")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(rs rowScanner) (*models.Product, error) {
	product := &models.Product{}

	var (
		catID   *uuid.UUID
		catName sql.NullString
		catDesc sql.NullString
	)

	err := rs.Scan(
		&product.ID, &product.CategoryID, &product.Name, &product.Description, &product.Price,
		&product.Stock, &product.InventoryLocation, &product.InventoryStatus, &product.Variants,
		&product.CreatedAt, &product.UpdatedAt,
		&catID, &catName, &catDesc,
	)
	if err != nil {
		return nil, err
	}

	if catID != nil {
		product.Category = &models.Category{ID: *catID, Name: catName.String, Description: catDesc.String}
	}

	return product, nil
}

func (r *productRepository) queryProducts(ctx context.Context, builder sq.SelectBuilder) ([]*models.Product, error) {

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (category_id, name, description, price, stock, inventory_location, inventory_status, variants)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.CategoryID, product.Name, product.Description, product.Price, product.Stock, product.InventoryLocation, product.InventoryStatus, product.Variants).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
        SELECT p.id, p.category_id, p.name, p.description, p.price,
               p.stock, p.inventory_location, p.inventory_status, p.variants,
               p.created_at, p.updated_at,
               c.id, c.name, c.description
        FROM products p
        LEFT JOIN categories c ON p.category_id = c.id
        WHERE p.id = $1`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateProduct writes every mutable column in one statement. Both the
// catalog update path and the inventory reconciler persist through here,
// so a reconciled product is saved exactly once.
func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET category_id = $1, name = $2, description = $3, price = $4, stock = $5,
			inventory_location = $6, inventory_status = $7, variants = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.CategoryID, product.Name, product.Description, product.Price, product.Stock, product.InventoryLocation, product.InventoryStatus, product.Variants, product.ID).Scan(&product.UpdatedAt)
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
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

	return nil
}

func (r *productRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products`

	err := r.DB.QueryRowContext(dbCtx, countQuery).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	builder := productSelect().
		OrderBy("p.created_at DESC", "p.id ASC").
		Limit(uint64(size)).
		Offset(uint64(offset))

	products, err := r.queryProducts(dbCtx, builder)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// ListAllProducts feeds the reporting engine; fetch order is insertion order
// so report example lists stay stable.
func (r *productRepository) ListAllProducts(ctx context.Context) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	builder := productSelect().OrderBy("p.created_at ASC")

	return r.queryProducts(dbCtx, builder)
}

func (r *productRepository) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, stock, inventory_location, inventory_status, variants
			  FROM products
			  ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var items []models.InventoryItem

	for rows.Next() {
		var item models.InventoryItem

		if err := rows.Scan(&item.ProductID, &item.Name, &item.Stock, &item.Location, &item.Status, &item.Variants); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// variantMatch builds an EXISTS clause over the variants array. All supplied
// constraints must hold on the same array element, so "in stock" is scoped to
// the matching variant rather than anywhere in the array.
func variantMatch(size, color string, mustHaveStock bool) sq.Sqlizer {
	var conds []string

	var args []any

	if size != "" {
		conds = append(conds, "v->>'size' = ?")
		args = append(args, size)
	}

	if color != "" {
		conds = append(conds, "v->>'color' = ?")
		args = append(args, color)
	}

	if mustHaveStock {
		conds = append(conds, "(v->>'stock')::int > 0")
	}

	expr := "EXISTS (SELECT 1 FROM jsonb_array_elements(p.variants) v WHERE " + strings.Join(conds, " AND ") + ")"

	return sq.Expr(expr, args...)
}

// buildSearchPredicate composes the faceted-search filter as typed clauses:
// facets AND-combined at the top level, keyword an OR over name/description.
func buildSearchPredicate(filter *models.SearchFilter) sq.And {
	pred := sq.And{}

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		pred = append(pred, sq.Or{
			sq.ILike{"p.name": like},
			sq.ILike{"p.description": like},
		})
	}

	if filter.CategoryID != nil {
		pred = append(pred, sq.Eq{"p.category_id": *filter.CategoryID})
	}

	if filter.MinPrice != nil {
		pred = append(pred, sq.GtOrEq{"p.price": *filter.MinPrice})
	}

	if filter.MaxPrice != nil {
		pred = append(pred, sq.LtOrEq{"p.price": *filter.MaxPrice})
	}

	if filter.InStock != nil {
		if *filter.InStock {
			pred = append(pred, sq.Gt{"p.stock": 0})
		} else {
			pred = append(pred, sq.Eq{"p.stock": 0})
		}
	}

	if filter.HasVariantFacet() {
		inStock := filter.InStock != nil && *filter.InStock
		pred = append(pred, variantMatch(filter.Size, filter.Color, inStock))
	}

	return pred
}

func searchOrderBy(sort models.SortMode) []string {
	switch sort {
	case models.SortPriceAsc:
		return []string{"p.price ASC", "p.id ASC"}
	case models.SortPriceDesc:
		return []string{"p.price DESC", "p.id ASC"}
	case models.SortNameAsc:
		return []string{"p.name ASC", "p.id ASC"}
	default:
		return []string{"p.created_at DESC", "p.id ASC"}
	}
}

func (r *productRepository) SearchProducts(ctx context.Context, filter *models.SearchFilter) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	pred := buildSearchPredicate(filter)

	countBuilder := psql.Select("COUNT(*)").From("products p")
	if len(pred) > 0 {
		countBuilder = countBuilder.Where(pred)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building count query: %w", err)
	}

	var total int

	if err := r.DB.QueryRowContext(dbCtx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize

	builder := productSelect().
		OrderBy(searchOrderBy(filter.Sort)...).
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	if len(pred) > 0 {
		builder = builder.Where(pred)
	}

	products, err := r.queryProducts(dbCtx, builder)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) SuggestNames(ctx context.Context, term string, limit int) ([]models.Suggestion, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	builder := psql.Select("id", "name").
		From("products").
		Where(sq.ILike{"name": "%" + term + "%"}).
		OrderBy("name ASC").
		Limit(uint64(limit))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var suggestions []models.Suggestion

	for rows.Next() {
		var s models.Suggestion

		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}

		suggestions = append(suggestions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return suggestions, nil
}

// FindLowStock issues one OR-combined query over main and variant stock, so
// a product low on both sides comes back exactly once and the result is a
// consistent snapshot.
func (r *productRepository) FindLowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	pred := sq.Or{
		sq.Lt{"p.stock": threshold},
		sq.Expr("EXISTS (SELECT 1 FROM jsonb_array_elements(p.variants) v WHERE (v->>'stock')::int < ?)", threshold),
	}

	builder := productSelect().Where(pred).OrderBy("p.created_at ASC")

	return r.queryProducts(dbCtx, builder)
}

func (r *productRepository) FindByVariant(ctx context.Context, size, color string, inStock bool) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	builder := productSelect().
		Where(variantMatch(size, color, inStock)).
		OrderBy("p.created_at DESC")

	return r.queryProducts(dbCtx, builder)
}
