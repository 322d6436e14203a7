package service_test

import (
	"errors"
	"testing"

	appErrors "github.com/marketbase/catalog-api/internal/errors"
	"github.com/marketbase/catalog-api/internal/models"
	"github.com/marketbase/catalog-api/internal/repositories/mocks"
	service "github.com/marketbase/catalog-api/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Pagination Math", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		searchService := service.NewSearchService(mockRepo)

		products := []*models.Product{{ID: uuid.New(), Name: "Trail Shirt"}}

		mockRepo.On("SearchProducts", mock.Anything, mock.MatchedBy(func(f *models.SearchFilter) bool {
			return f.Page == 1 && f.PageSize == 10 && f.Sort == models.SortNewest
		})).Return(products, 25, nil).Once()

		// Act
		result, err := searchService.Search(ctx, &models.SearchFilter{Keyword: "shirt"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 25, result.Total)
		assert.Equal(t, 3, result.TotalPages)
		assert.True(t, result.HasMore)
		assert.Equal(t, 1, result.Page)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Last Page Has No More", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		searchService := service.NewSearchService(mockRepo)

		mockRepo.On("SearchProducts", mock.Anything, mock.AnythingOfType("*models.SearchFilter")).
			Return([]*models.Product{}, 25, nil).Once()

		// Act
		result, err := searchService.Search(ctx, &models.SearchFilter{Page: 3})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalPages)
		assert.False(t, result.HasMore)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - No Matches Yields Empty Slice", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		searchService := service.NewSearchService(mockRepo)

		mockRepo.On("SearchProducts", mock.Anything, mock.AnythingOfType("*models.SearchFilter")).
			Return(nil, 0, nil).Once()

		// Act
		result, err := searchService.Search(ctx, &models.SearchFilter{Keyword: "nothing"})

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, result.Products, "empty result should marshal as [], not null")
		assert.Empty(t, result.Products)
		assert.Zero(t, result.TotalPages)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		searchService := service.NewSearchService(mockRepo)

		mockRepo.On("SearchProducts", mock.Anything, mock.AnythingOfType("*models.SearchFilter")).
			Return(nil, 0, errors.New("query failed")).Once()

		// Act
		result, err := searchService.Search(ctx, &models.SearchFilter{})

		// Assert
		require.Error(t, err)
		assert.Nil(t, result)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

func TestSuggest(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Short Term Returns Empty Without Querying", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		searchService := service.NewSearchService(mockRepo)

		// Act
		suggestions, err := searchService.Suggest(ctx, "s", 5)

		// Assert
		require.NoError(t, err, "a too-short term is not an error")
		assert.NotNil(t, suggestions)
		assert.Empty(t, suggestions)
		mockRepo.AssertNotCalled(t, "SuggestNames", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success - Multibyte Term Counts Runes", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		searchService := service.NewSearchService(mockRepo)

		mockRepo.On("SuggestNames", mock.Anything, "ük", 5).
			Return([]models.Suggestion{{ID: uuid.New(), Name: "Tükör"}}, nil).Once()

		// Act
		suggestions, err := searchService.Suggest(ctx, "ük", 5)

		// Assert
		require.NoError(t, err)
		require.Len(t, suggestions, 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Default Limit Applied", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		searchService := service.NewSearchService(mockRepo)

		mockRepo.On("SuggestNames", mock.Anything, "sh", models.DefaultSuggestLimit).
			Return([]models.Suggestion{}, nil).Once()

		// Act
		_, err := searchService.Suggest(ctx, "sh", 0)

		// Assert
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - No Matches Returns Empty Slice", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		searchService := service.NewSearchService(mockRepo)

		mockRepo.On("SuggestNames", mock.Anything, "zz", 5).Return(nil, nil).Once()

		// Act
		suggestions, err := searchService.Suggest(ctx, "zz", 5)

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, suggestions)
		assert.Empty(t, suggestions)
		mockRepo.AssertExpectations(t)
	})
}

func TestSearchByVariant(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Size Only", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		searchService := service.NewSearchService(mockRepo)

		mockRepo.On("FindByVariant", mock.Anything, "M", "", true).
			Return([]*models.Product{{ID: uuid.New()}}, nil).Once()

		// Act
		products, err := searchService.SearchByVariant(ctx, "M", "", true)

		// Assert
		require.NoError(t, err)
		require.Len(t, products, 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - No Facet Supplied", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		searchService := service.NewSearchService(mockRepo)

		// Act
		products, err := searchService.SearchByVariant(ctx, "", "", false)

		// Assert
		require.Error(t, err)
		assert.Nil(t, products)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		mockRepo.AssertNotCalled(t, "FindByVariant", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLowStockProducts(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Main Stock Low Listed First", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		searchService := service.NewSearchService(mockRepo)

		variantOnly := &models.Product{
			ID:       uuid.New(),
			Name:     "Variant Low",
			Stock:    50,
			Variants: models.VariantList{{Size: "M", Color: "Blue", Stock: 2}},
		}
		mainLow := &models.Product{ID: uuid.New(), Name: "Main Low", Stock: 3}

		// store returns fetch order; the service regroups
		mockRepo.On("FindLowStock", mock.Anything, 5).
			Return([]*models.Product{variantOnly, mainLow}, nil).Once()

		// Act
		products, err := searchService.LowStockProducts(ctx, 5)

		// Assert
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Main Low", products[0].Name)
		assert.Equal(t, "Variant Low", products[1].Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Product Low Both Ways Appears Once", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		searchService := service.NewSearchService(mockRepo)

		both := &models.Product{
			ID:       uuid.New(),
			Name:     "Both Low",
			Stock:    3,
			Variants: models.VariantList{{Size: "M", Color: "Blue", Stock: 2}},
		}

		mockRepo.On("FindLowStock", mock.Anything, 5).
			Return([]*models.Product{both}, nil).Once()

		// Act
		products, err := searchService.LowStockProducts(ctx, 5)

		// Assert
		require.NoError(t, err)
		require.Len(t, products, 1, "the single query cannot duplicate a product")
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Default Threshold", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		searchService := service.NewSearchService(mockRepo)

		mockRepo.On("FindLowStock", mock.Anything, models.DefaultLowStockLevel).
			Return([]*models.Product{}, nil).Once()

		// Act
		_, err := searchService.LowStockProducts(ctx, 0)

		// Assert
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestLowStockReport(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Entries Sorted By Severity", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		searchService := service.NewSearchService(mockRepo)

		mainLowWorse := &models.Product{ID: uuid.New(), Name: "Main Worse", Stock: 1}
		mainLow := &models.Product{ID: uuid.New(), Name: "Main Low", Stock: 3}
		variantOnly := &models.Product{
			ID:    uuid.New(),
			Name:  "Variant Only",
			Stock: 40,
			Variants: models.VariantList{
				{Size: "M", Color: "Blue", Stock: 4},
				{Size: "L", Color: "Red", Stock: 9},
			},
		}

		mockRepo.On("FindLowStock", mock.Anything, 5).
			Return([]*models.Product{variantOnly, mainLow, mainLowWorse}, nil).Once()

		// Act
		entries, err := searchService.LowStockReport(ctx, 5)

		// Assert
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "Main Worse", entries[0].Name, "lowest main stock ranks first")
		assert.Equal(t, "Main Low", entries[1].Name)
		assert.Equal(t, "Variant Only", entries[2].Name, "variant-only matches rank after main-stock ones")
		assert.True(t, entries[0].StockLow)
		assert.False(t, entries[2].StockLow)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Only Low Variants Are Kept", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		searchService := service.NewSearchService(mockRepo)

		product := &models.Product{
			ID:    uuid.New(),
			Name:  "Mixed Variants",
			Stock: 40,
			Variants: models.VariantList{
				{Size: "M", Color: "Blue", Stock: 2},
				{Size: "L", Color: "Red", Stock: 50},
			},
		}

		mockRepo.On("FindLowStock", mock.Anything, 5).
			Return([]*models.Product{product}, nil).Once()

		// Act
		entries, err := searchService.LowStockReport(ctx, 5)

		// Assert
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Len(t, entries[0].Variants, 1, "healthy variants must be filtered out")
		assert.Equal(t, "M", entries[0].Variants[0].Size)
		mockRepo.AssertExpectations(t)
	})
}
