package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/marketbase/catalog-api/internal/api/middleware"
	appErrors "github.com/marketbase/catalog-api/internal/errors"
	"github.com/marketbase/catalog-api/internal/metrics"
	"github.com/marketbase/catalog-api/internal/models"
	repository "github.com/marketbase/catalog-api/internal/repositories"
	"github.com/marketbase/catalog-api/internal/utils"
)

type InventoryService interface {
	UpdateInventory(ctx context.Context, id uuid.UUID, req *models.InventoryUpdateRequest) (*models.Product, error)
	BulkUpdateInventory(ctx context.Context, req *models.BulkInventoryRequest) []models.BulkUpdateResult
	ListInventory(ctx context.Context) ([]models.InventoryItem, error)
}

type inventoryService struct {
	repo repository.ProductRepository
}

func NewInventoryService(repo repository.ProductRepository) InventoryService {
	return &inventoryService{repo: repo}
}

// UpdateInventory applies a partial update to one product and persists the
// result in a single write. Absent fields leave the product untouched:
// stock uses a strict nil check so an explicit 0 still applies, while
// location and status treat the empty string as absent.
func (s *inventoryService) UpdateInventory(ctx context.Context, id uuid.UUID, req *models.InventoryUpdateRequest) (*models.Product, error) {

	logger := middleware.LoggerFromContext(ctx)

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		metrics.ObserveInventoryUpdate("failure")

		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	reconcile(product, req)

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		metrics.ObserveInventoryUpdate("failure")
		return nil, appErrors.DatabaseError("Failed to save inventory update").WithError(err)
	}

	metrics.ObserveInventoryUpdate("success")
	logger.Info("Inventory updated",
		slog.String("productId", product.ID.String()),
		slog.Int("stock", product.Stock),
		slog.Int("variants", len(product.Variants)))

	return product, nil
}

// reconcile mutates the product in place. Variant deltas merge by the
// (size, color) key: a match replaces that variant's stock, anything else
// is appended as a new variant.
func reconcile(product *models.Product, req *models.InventoryUpdateRequest) {

	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if req.Location != "" {
		product.InventoryLocation = req.Location
	}

	if req.Status != "" {
		product.InventoryStatus = req.Status
	}

	for _, delta := range req.Variants {
		if existing := product.Variants.Find(delta.Size, delta.Color); existing != nil {
			existing.Stock = delta.Stock
		} else {
			product.Variants = append(product.Variants, models.Variant{
				Size:  delta.Size,
				Color: delta.Color,
				Stock: delta.Stock,
			})
		}
	}
}

// BulkUpdateInventory processes items sequentially and independently: one
// item's failure is recorded and never aborts the batch, and earlier
// successes stay persisted.
func (s *inventoryService) BulkUpdateInventory(ctx context.Context, req *models.BulkInventoryRequest) []models.BulkUpdateResult {

	ctx, cancel := utils.WithBulkTimeout(ctx)
	defer cancel()

	results := make([]models.BulkUpdateResult, 0, len(req.Updates))

	for i := range req.Updates {
		item := &req.Updates[i]

		_, err := s.UpdateInventory(ctx, item.ProductID, &item.Update)
		if err != nil {
			message := "Failed to update inventory"
			if appErr, ok := appErrors.IsAppError(err); ok {
				message = appErr.Message
			}

			results = append(results, models.BulkUpdateResult{
				ProductID: item.ProductID,
				Success:   false,
				Message:   message,
			})

			continue
		}

		results = append(results, models.BulkUpdateResult{
			ProductID: item.ProductID,
			Success:   true,
		})
	}

	return results
}

func (s *inventoryService) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {

	items, err := s.repo.ListInventory(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch inventory").WithError(err)
	}

	return items, nil
}
