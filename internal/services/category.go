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

type CategoryService interface {
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo      repository.CategoryRepository
	sanitizer *bluemonday.Policy
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo, sanitizer: bluemonday.StrictPolicy()}
}

func (s *categoryService) sanitize(value string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(value))
}

func (s *categoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	category := &models.Category{
		Name:        s.sanitize(req.Name),
		Description: s.sanitize(req.Description),
	}

	err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, appErrors.DuplicateEntryError("Category name already exists").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to create category").WithError(err)
	}

	return category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Category not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch category").WithError(err)
	}

	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Category not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch category").WithError(err)
	}

	if req.Name != nil {
		category.Name = s.sanitize(*req.Name)
	}
	if req.Description != nil {
		category.Description = s.sanitize(*req.Description)
	}

	err = s.repo.UpdateCategory(ctx, category)
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, appErrors.DuplicateEntryError("Category name already exists").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update category").WithError(err)
	}

	return category, nil
}

// DeleteCategory removes the category; referencing products are detached,
// never deleted, inside the repository transaction.
func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {

	err := s.repo.DeleteCategory(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Category not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete category").WithError(err)
	}

	return nil
}
