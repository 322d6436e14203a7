package handlers_test

import (
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

func TestInventoryValueReport(t *testing.T) {
	mockReportService := new(mocks.ReportService)
	reportHandler := handlers.NewReportHandler(mockReportService)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/reports/inventory-value", nil)

		expectedReport := &models.InventoryValueReport{
			TotalValue: 1234.56,
			Categories: []models.CategoryValue{
				{Category: "Apparel", Value: 1000.06},
				{Category: "Uncategorized", Value: 234.50},
			},
			ProductCount: 7,
		}

		mockReportService.On("InventoryValue", mock.Anything).Return(expectedReport, nil).Once()

		// Act
		handler := reportHandler.InventoryValue()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var report models.InventoryValueReport
		decodeData(t, rr.Body.Bytes(), &report)
		assert.Equal(t, expectedReport.TotalValue, report.TotalValue)
		assert.Len(t, report.Categories, 2)
		assert.Equal(t, "Apparel", report.Categories[0].Category)

		mockReportService.AssertExpectations(t)
	})

	t.Run("Service Error", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/reports/inventory-value", nil)

		mockReportService.On("InventoryValue", mock.Anything).Return(nil, appErrors.DatabaseError("DB Query Failed")).Once()

		// Act
		handler := reportHandler.InventoryValue()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), appErrors.ErrCodeDatabaseError)
		mockReportService.AssertExpectations(t)
	})
}

func TestStockLevelsReport(t *testing.T) {
	mockReportService := new(mocks.ReportService)
	reportHandler := handlers.NewReportHandler(mockReportService)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/reports/stock-levels", nil)

		expectedReport := &models.StockLevelReport{
			Buckets: []models.StockBucket{
				{Label: models.BucketOutOfStock, Count: 1, Examples: []models.BucketEntry{{ProductID: uuid.New(), Name: "Boot", Stock: 0}}},
				{Label: models.BucketLowStock, Count: 0, Examples: []models.BucketEntry{}},
				{Label: models.BucketMediumStock, Count: 2, Examples: []models.BucketEntry{}},
				{Label: models.BucketHighStock, Count: 0, Examples: []models.BucketEntry{}},
			},
			Stats:        models.StockStats{TotalStock: 30, MaxStock: 18, MinStock: 0, AveragePerProduct: 10},
			ProductCount: 3,
		}

		mockReportService.On("StockLevels", mock.Anything).Return(expectedReport, nil).Once()

		// Act
		handler := reportHandler.StockLevels()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var report models.StockLevelReport
		decodeData(t, rr.Body.Bytes(), &report)
		assert.Len(t, report.Buckets, 4)
		assert.Equal(t, models.BucketOutOfStock, report.Buckets[0].Label)
		assert.Equal(t, 30, report.Stats.TotalStock)

		mockReportService.AssertExpectations(t)
	})

	t.Run("Service Error", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/reports/stock-levels", nil)

		mockReportService.On("StockLevels", mock.Anything).Return(nil, appErrors.DatabaseError("DB Query Failed")).Once()

		// Act
		handler := reportHandler.StockLevels()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), appErrors.ErrCodeDatabaseError)
		mockReportService.AssertExpectations(t)
	})
}

func TestLowStockAlertReport(t *testing.T) {
	mockReportService := new(mocks.ReportService)
	reportHandler := handlers.NewReportHandler(mockReportService)

	t.Run("Success - Explicit Threshold", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/reports/low-stock-alert?threshold=5", nil)

		expectedReport := &models.LowStockAlertReport{
			Threshold: 5,
			Count:     1,
			Items: []models.LowStockEntry{
				{ProductID: uuid.New(), Name: "Boot", Stock: 2, StockLow: true, Variants: models.VariantList{}},
			},
		}

		mockReportService.On("LowStockAlert", mock.Anything, 5).Return(expectedReport, nil).Once()

		// Act
		handler := reportHandler.LowStockAlert()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var report models.LowStockAlertReport
		decodeData(t, rr.Body.Bytes(), &report)
		assert.Equal(t, 5, report.Threshold)
		assert.Equal(t, 1, report.Count)
		assert.True(t, report.Items[0].StockLow)

		mockReportService.AssertExpectations(t)
	})

	t.Run("Missing Threshold Passes Zero Through", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/reports/low-stock-alert", nil)

		// The service swaps 0 for its default threshold.
		expectedReport := &models.LowStockAlertReport{Threshold: models.DefaultLowStockLevel, Items: []models.LowStockEntry{}}

		mockReportService.On("LowStockAlert", mock.Anything, 0).Return(expectedReport, nil).Once()

		// Act
		handler := reportHandler.LowStockAlert()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var report models.LowStockAlertReport
		decodeData(t, rr.Body.Bytes(), &report)
		assert.Equal(t, models.DefaultLowStockLevel, report.Threshold)

		mockReportService.AssertExpectations(t)
	})

	t.Run("Service Error", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/reports/low-stock-alert?threshold=5", nil)

		mockReportService.On("LowStockAlert", mock.Anything, 5).Return(nil, appErrors.DatabaseError("DB Query Failed")).Once()

		// Act
		handler := reportHandler.LowStockAlert()
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), appErrors.ErrCodeDatabaseError)
		mockReportService.AssertExpectations(t)
	})
}
