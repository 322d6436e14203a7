package handlers

import (
	"log/slog"
	"net/http"

	"github.com/marketbase/catalog-api/internal/api/middleware"
	"github.com/marketbase/catalog-api/internal/models"
	service "github.com/marketbase/catalog-api/internal/services"
	"github.com/marketbase/catalog-api/internal/utils"
	"github.com/marketbase/catalog-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CategoryHandler struct {
	categoryService service.CategoryService
	validator       *validator.Validate
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, validator: validator.New()}
}

// CreateCategory godoc
//	@Summary		Create a new category
//	@Description	Creates a category; names are unique across the catalog. Requires admin.
//	@Tags			Categories
//	@Accept			json
//	@Produce		json
//	@Param			category	body		models.CreateCategoryRequest	true	"Category Details"
//	@Success		201			{object}	models.Category					"Successfully created category"
//	@Failure		400			{object}	response.ErrorResponse			"Validation error or duplicate name"
//	@Failure		401			{object}	response.ErrorResponse			"Authentication required"
//	@Failure		403			{object}	response.ErrorResponse			"Admin access required"
//	@Failure		500			{object}	response.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/categories [post]
func (h *CategoryHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create category input")
			return
		}

		category, err := h.categoryService.CreateCategory(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create category", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Category created successfully", slog.String("categoryId", category.ID.String()))
		response.Success(w, http.StatusCreated, category)
	}
}

// GetCategory godoc
//	@Summary		Get a category by ID
//	@Tags			Categories
//	@Produce		json
//	@Param			id	path		string					true	"Category ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Category			"Successfully retrieved category"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid category ID format"
//	@Failure		404	{object}	response.ErrorResponse	"Category not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/categories/{id} [get]
func (h *CategoryHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid category id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		category, err := h.categoryService.GetCategoryByID(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get category",
				slog.String("categoryId", id.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, category)
	}
}

// ListCategories godoc
//	@Summary		List all categories
//	@Tags			Categories
//	@Produce		json
//	@Success		200	{array}		models.Category			"Successfully retrieved categories"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/categories [get]
func (h *CategoryHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		categories, err := h.categoryService.ListCategories(r.Context())
		if err != nil {
			logger.Error("Failed to list categories", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

// UpdateCategory godoc
//	@Summary		Update a category
//	@Description	Applies a partial update; renaming onto an existing name fails. Requires admin.
//	@Tags			Categories
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string							true	"Category ID (UUID)"	Format(uuid)
//	@Param			category	body		models.UpdateCategoryRequest	true	"Fields to update"
//	@Success		200			{object}	models.Category					"Successfully updated category"
//	@Failure		400			{object}	response.ErrorResponse			"Invalid ID format, validation error, or duplicate name"
//	@Failure		401			{object}	response.ErrorResponse			"Authentication required"
//	@Failure		403			{object}	response.ErrorResponse			"Admin access required"
//	@Failure		404			{object}	response.ErrorResponse			"Category not found"
//	@Failure		500			{object}	response.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid category id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("categoryId", id.String()))

		var req models.UpdateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update category input")
			return
		}

		category, err := h.categoryService.UpdateCategory(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update category", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Category updated successfully")
		response.Success(w, http.StatusOK, category)
	}
}

// DeleteCategory godoc
//	@Summary		Delete a category
//	@Description	Deletes the category; referencing products are detached, not deleted. Requires admin.
//	@Tags			Categories
//	@Produce		json
//	@Param			id	path		string					true	"Category ID (UUID)"	Format(uuid)
//	@Success		200	{object}	response.APIResponse	"Successfully deleted category"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid category ID format"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403	{object}	response.ErrorResponse	"Admin access required"
//	@Failure		404	{object}	response.ErrorResponse	"Category not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid category id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if err := h.categoryService.DeleteCategory(r.Context(), id); err != nil {
			logger.Error("Failed to delete category",
				slog.String("categoryId", id.String()),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Category deleted successfully", slog.String("categoryId", id.String()))
		response.Success(w, http.StatusOK, map[string]string{"id": id.String()})
	}
}
