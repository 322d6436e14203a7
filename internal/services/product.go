package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	appErrors "github.com/marketbase/catalog-api/internal/errors"
	"github.com/marketbase/catalog-api/internal/models"
	repository "github.com/marketbase/catalog-api/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error)
}

type productService struct {
	repo      repository.ProductRepository
	sanitizer *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo, sanitizer: bluemonday.StrictPolicy()}
}

// sanitize strips any markup from caller-supplied free text.
func (s *productService) sanitize(value string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(value))
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	variants := make(models.VariantList, 0, len(req.Variants))
	for _, v := range req.Variants {
		variants = append(variants, models.Variant{Size: v.Size, Color: v.Color, Stock: v.Stock})
	}

	product := &models.Product{
		CategoryID:        req.CategoryID,
		Name:              s.sanitize(req.Name),
		Description:       s.sanitize(req.Description),
		Price:             req.Price,
		Stock:             req.Stock,
		InventoryLocation: req.Location,
		InventoryStatus:   req.Status,
		Variants:          variants,
	}

	err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}
	if req.Name != nil {
		product.Name = s.sanitize(*req.Name)
	}
	if req.Description != nil {
		product.Description = s.sanitize(*req.Description)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	err = s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {

	err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Product not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete product").WithError(err)
	}

	return nil
}

// page means "page number requested"
// pageSize means "number of products to be displayed per page"
func (s *productService) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error) {

	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = models.DefaultPageSize
	}

	products, total, err := s.repo.ListProducts(ctx, page, pageSize)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}
