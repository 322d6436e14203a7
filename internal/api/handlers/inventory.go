package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/marketbase/catalog-api/internal/api/middleware"
	"github.com/marketbase/catalog-api/internal/models"
	service "github.com/marketbase/catalog-api/internal/services"
	"github.com/marketbase/catalog-api/internal/utils"
	"github.com/marketbase/catalog-api/internal/utils/response"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
	searchService    service.SearchService
	validator        *validator.Validate
}

func NewInventoryHandler(inventoryService service.InventoryService, searchService service.SearchService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		searchService:    searchService,
		validator:        validator.New(),
	}
}

// ListInventory godoc
//	@Summary		List inventory
//	@Description	Returns the stock-only projection of every product: id, name, stock, location, status and variants.
//	@Tags			Inventory
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		models.InventoryItem	"Inventory items"
//	@Failure		401	{object}	response.ErrorResponse	"Unauthorized"
//	@Failure		403	{object}	response.ErrorResponse	"Admin access required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/inventory [get]
func (h *InventoryHandler) ListInventory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		items, err := h.inventoryService.ListInventory(r.Context())
		if err != nil {
			logger.Error("Failed to list inventory", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Inventory listed", slog.Int("count", len(items)))
		response.Success(w, http.StatusOK, items)
	}
}

// UpdateInventory godoc
//	@Summary		Update inventory for one product
//	@Description	Applies a partial stock update. Omitted fields keep their stored value; an explicit stock of 0 is applied. Variant deltas merge by size and color.
//	@Tags			Inventory
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string							true	"Product ID (UUID)"	Format(uuid)
//	@Param			update	body		models.InventoryUpdateRequest	true	"Fields to update"
//	@Success		200		{object}	models.Product					"Updated product"
//	@Failure		400		{object}	response.ErrorResponse			"Invalid request payload"
//	@Failure		401		{object}	response.ErrorResponse			"Unauthorized"
//	@Failure		403		{object}	response.ErrorResponse			"Admin access required"
//	@Failure		404		{object}	response.ErrorResponse			"Product not found"
//	@Failure		500		{object}	response.ErrorResponse			"Internal server error"
//	@Router			/inventory/{id} [patch]
func (h *InventoryHandler) UpdateInventory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product ID", slog.String("id", r.PathValue("id")))
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("productId", id.String()))

		var req models.InventoryUpdateRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid inventory update payload")
			return
		}

		product, err := h.inventoryService.UpdateInventory(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update inventory", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Inventory updated", slog.Int("stock", product.Stock))
		response.Success(w, http.StatusOK, product)
	}
}

// BulkUpdateInventory godoc
//	@Summary		Bulk update inventory
//	@Description	Applies partial stock updates to many products in one call. Items are processed independently: a failed item is reported in its result entry and does not roll back the others. A malformed request body rejects the whole batch up front.
//	@Tags			Inventory
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			updates	body		models.BulkInventoryRequest	true	"Batch of inventory updates"
//	@Success		200		{array}		models.BulkUpdateResult		"Per-item outcomes"
//	@Failure		400		{object}	response.ErrorResponse		"Invalid request payload"
//	@Failure		401		{object}	response.ErrorResponse		"Unauthorized"
//	@Failure		403		{object}	response.ErrorResponse		"Admin access required"
//	@Router			/inventory/bulk [patch]
func (h *InventoryHandler) BulkUpdateInventory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.BulkInventoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid bulk inventory payload")
			return
		}

		results := h.inventoryService.BulkUpdateInventory(r.Context(), &req)

		succeeded := 0
		for _, result := range results {
			if result.Success {
				succeeded++
			}
		}

		logger.Info("Bulk inventory update completed",
			slog.Int("total", len(results)),
			slog.Int("succeeded", succeeded))
		response.Success(w, http.StatusOK, results)
	}
}

// LowStock godoc
//	@Summary		List low-stock products
//	@Description	Returns products whose main stock or any variant stock sits below the threshold. Products low on main stock come first, ordered by creation time.
//	@Tags			Inventory
//	@Produce		json
//	@Security		BearerAuth
//	@Param			threshold	query		int						false	"Stock threshold (default: 10)"	minimum(1)
//	@Success		200			{array}		models.Product			"Low-stock products"
//	@Failure		401			{object}	response.ErrorResponse	"Unauthorized"
//	@Failure		403			{object}	response.ErrorResponse	"Admin access required"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/inventory/low-stock [get]
func (h *InventoryHandler) LowStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		threshold, _ := strconv.Atoi(r.URL.Query().Get("threshold"))

		products, err := h.searchService.LowStockProducts(r.Context(), threshold)
		if err != nil {
			logger.Error("Failed to fetch low-stock products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Low-stock products fetched",
			slog.Int("threshold", threshold),
			slog.Int("count", len(products)))
		response.Success(w, http.StatusOK, products)
	}
}
