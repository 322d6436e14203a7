package models

import "github.com/google/uuid"

// InventoryUpdateRequest carries a partial stock update for one product.
//
// Stock is a pointer on purpose: 0 is a legitimate value and must be
// distinguishable from "not sent". Location and Status intentionally stay
// plain strings, so an empty string is treated as absent and never clears
// the stored value. That asymmetry is inherited behavior and kept as is.
type InventoryUpdateRequest struct {
	Stock    *int                `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Location string              `json:"location,omitempty"`
	Status   string              `json:"status,omitempty"`
	Variants []VariantStockDelta `json:"variants,omitempty" validate:"omitempty,dive"`
}

// VariantStockDelta addresses one variant by its (size, color) key and
// supplies the full replacement stock value.
type VariantStockDelta struct {
	Size  string `json:"size" validate:"required"`
	Color string `json:"color" validate:"required"`
	Stock int    `json:"stock" validate:"gte=0"`
}

type BulkInventoryItem struct {
	ProductID uuid.UUID              `json:"id" validate:"required"`
	Update    InventoryUpdateRequest `json:"update"`
}

type BulkInventoryRequest struct {
	Updates []BulkInventoryItem `json:"updates" validate:"required,min=1,dive"`
}

// BulkUpdateResult is the per-item outcome of a bulk update. A failed item
// never aborts the batch; it just records why it was skipped.
type BulkUpdateResult struct {
	ProductID uuid.UUID `json:"id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
}

// InventoryItem is the stock-only projection used by the inventory listing.
type InventoryItem struct {
	ProductID uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Stock     int         `json:"stock"`
	Location  string      `json:"inventory_location,omitempty"`
	Status    string      `json:"inventory_status,omitempty"`
	Variants  VariantList `json:"variants"`
}
