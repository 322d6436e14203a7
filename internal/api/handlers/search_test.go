package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marketbase/catalog-api/internal/api/handlers"
	appErrors "github.com/marketbase/catalog-api/internal/errors"
	"github.com/marketbase/catalog-api/internal/models"
	"github.com/marketbase/catalog-api/internal/services/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSearchProducts(t *testing.T) {
	mockSearchService := new(mocks.SearchService)
	searchHandler := handlers.NewSearchHandler(mockSearchService)

	t.Run("Success - Full Filter", func(t *testing.T) {
		// Arrange
		categoryID := uuid.New()
		target := fmt.Sprintf("/products/search?q=shirt&category_id=%s&min_price=10&max_price=50&size=M&color=Blue&in_stock=true&sort=price_asc&page=2&pageSize=20", categoryID)

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, target, nil)

		expectedResult := &models.SearchResult{
			Products:   []*models.Product{{ID: uuid.New(), Name: "Blue Shirt"}},
			Page:       2,
			PageSize:   20,
			TotalPages: 3,
			Total:      41,
			HasMore:    true,
		}

		mockSearchService.On("Search", mock.Anything, mock.MatchedBy(func(f *models.SearchFilter) bool {
			return f.Keyword == "shirt" &&
				f.CategoryID != nil && *f.CategoryID == categoryID &&
				f.MinPrice != nil && *f.MinPrice == 10 &&
				f.MaxPrice != nil && *f.MaxPrice == 50 &&
				f.Size == "M" && f.Color == "Blue" &&
				f.InStock != nil && *f.InStock &&
				f.Sort == models.SortPriceAsc &&
				f.Page == 2 && f.PageSize == 20
		})).Return(expectedResult, nil).Once()

		// Act
		handler := searchHandler.SearchProducts()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var result models.SearchResult
		decodeData(t, rr.Body.Bytes(), &result)
		assert.Equal(t, expectedResult.Total, result.Total)
		assert.True(t, result.HasMore)
		assert.Len(t, result.Products, 1)

		mockSearchService.AssertExpectations(t)
	})

	t.Run("Success - Empty Query Lists Everything", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/products/search", nil)

		expectedResult := &models.SearchResult{Products: []*models.Product{}, Page: 1, PageSize: 10}

		// Unset facets arrive as zero values; the service normalizes them.
		mockSearchService.On("Search", mock.Anything, mock.MatchedBy(func(f *models.SearchFilter) bool {
			return f.Keyword == "" && f.CategoryID == nil && f.MinPrice == nil &&
				f.MaxPrice == nil && f.InStock == nil && f.Page == 0 && f.PageSize == 0
		})).Return(expectedResult, nil).Once()

		// Act
		handler := searchHandler.SearchProducts()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockSearchService.AssertExpectations(t)
	})

	t.Run("Invalid category_id", func(t *testing.T) {
		// Arrange
		mockSearchService := new(mocks.SearchService)
		searchHandler := handlers.NewSearchHandler(mockSearchService)
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/products/search?category_id=not-a-uuid", nil)

		// Act
		handler := searchHandler.SearchProducts()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid category_id filter")
		mockSearchService.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("Invalid min_price", func(t *testing.T) {
		// Arrange
		mockSearchService := new(mocks.SearchService)
		searchHandler := handlers.NewSearchHandler(mockSearchService)
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/products/search?min_price=cheap", nil)

		// Act
		handler := searchHandler.SearchProducts()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid min_price filter")
		mockSearchService.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("Invalid in_stock", func(t *testing.T) {
		// Arrange
		mockSearchService := new(mocks.SearchService)
		searchHandler := handlers.NewSearchHandler(mockSearchService)
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/products/search?in_stock=maybe", nil)

		// Act
		handler := searchHandler.SearchProducts()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid in_stock filter")
		mockSearchService.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("Service Error", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/products/search?q=shirt", nil)

		mockSearchService.On("Search", mock.Anything, mock.Anything).Return(nil, appErrors.DatabaseError("DB Query Failed")).Once()

		// Act
		handler := searchHandler.SearchProducts()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), appErrors.ErrCodeDatabaseError)
		mockSearchService.AssertExpectations(t)
	})
}

func TestSuggestions(t *testing.T) {
	mockSearchService := new(mocks.SearchService)
	searchHandler := handlers.NewSearchHandler(mockSearchService)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/products/suggestions?q=sh&limit=3", nil)

		expectedSuggestions := []models.Suggestion{
			{ID: uuid.New(), Name: "Shirt"},
			{ID: uuid.New(), Name: "Shorts"},
		}

		mockSearchService.On("Suggest", mock.Anything, "sh", 3).Return(expectedSuggestions, nil).Once()

		// Act
		handler := searchHandler.Suggestions()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var suggestions []models.Suggestion
		decodeData(t, rr.Body.Bytes(), &suggestions)
		assert.Len(t, suggestions, 2)
		assert.Equal(t, "Shirt", suggestions[0].Name)

		mockSearchService.AssertExpectations(t)
	})

	t.Run("Missing Limit Passes Zero Through", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/products/suggestions?q=shoe", nil)

		mockSearchService.On("Suggest", mock.Anything, "shoe", 0).Return([]models.Suggestion{}, nil).Once()

		// Act
		handler := searchHandler.Suggestions()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockSearchService.AssertExpectations(t)
	})

	t.Run("Service Error", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/products/suggestions?q=sh", nil)

		mockSearchService.On("Suggest", mock.Anything, "sh", 0).Return(nil, appErrors.DatabaseError("DB Query Failed")).Once()

		// Act
		handler := searchHandler.Suggestions()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), appErrors.ErrCodeDatabaseError)
		mockSearchService.AssertExpectations(t)
	})
}

func TestSearchByVariants(t *testing.T) {
	mockSearchService := new(mocks.SearchService)
	searchHandler := handlers.NewSearchHandler(mockSearchService)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/products/search/variants?size=M&in_stock=true", nil)

		expectedProducts := []*models.Product{
			{ID: uuid.New(), Name: "Shirt", Variants: models.VariantList{{Size: "M", Color: "Blue", Stock: 3}}},
		}

		mockSearchService.On("SearchByVariant", mock.Anything, "M", "", true).Return(expectedProducts, nil).Once()

		// Act
		handler := searchHandler.SearchByVariants()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var products []models.Product
		decodeData(t, rr.Body.Bytes(), &products)
		assert.Len(t, products, 1)
		assert.Equal(t, "Shirt", products[0].Name)

		mockSearchService.AssertExpectations(t)
	})

	t.Run("No Facet Given", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/products/search/variants", nil)

		mockSearchService.On("SearchByVariant", mock.Anything, "", "", false).Return(nil, appErrors.ValidationError("Either size or color is required")).Once()

		// Act
		handler := searchHandler.SearchByVariants()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), appErrors.ErrCodeValidation)
		mockSearchService.AssertExpectations(t)
	})

	t.Run("Service Error", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/products/search/variants?color=Blue", nil)

		mockSearchService.On("SearchByVariant", mock.Anything, "", "Blue", false).Return(nil, appErrors.DatabaseError("DB Query Failed")).Once()

		// Act
		handler := searchHandler.SearchByVariants()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), appErrors.ErrCodeDatabaseError)
		mockSearchService.AssertExpectations(t)
	})
}
