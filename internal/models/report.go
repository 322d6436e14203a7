package models

import "github.com/google/uuid"

// Stock-level bucket labels. A product lands in exactly one bucket based on
// its main stock: 0, 1-5, 6-20, above 20.
const (
	BucketOutOfStock  = "Out of Stock"
	BucketLowStock    = "Low Stock"
	BucketMediumStock = "Medium Stock"
	BucketHighStock   = "High Stock"
)

// BucketExampleCap limits how many example products a bucket keeps.
const BucketExampleCap = 5

type CategoryValue struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

type InventoryValueReport struct {
	TotalValue   float64         `json:"totalValue"`
	Categories   []CategoryValue `json:"categories"`
	ProductCount int             `json:"productCount"`
}

type StockBucket struct {
	Label    string        `json:"label"`
	Count    int           `json:"count"`
	Examples []BucketEntry `json:"examples"`
}

type BucketEntry struct {
	ProductID uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Stock     int       `json:"stock"`
}

// StockStats summarizes the flattened multiset of every main stock and every
// variant stock across the catalog.
type StockStats struct {
	TotalStock        int     `json:"totalStock"`
	MaxStock          int     `json:"maxStock"`
	MinStock          int     `json:"minStock"`
	AveragePerProduct float64 `json:"averagePerProduct"`
}

type StockLevelReport struct {
	Buckets      []StockBucket `json:"buckets"`
	Stats        StockStats    `json:"stats"`
	ProductCount int           `json:"productCount"`
}

// LowStockEntry is one product in the variant-aware low-stock report.
// StockLow marks the main stock as below threshold; Variants holds only the
// individually low variants.
type LowStockEntry struct {
	ProductID uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Stock     int         `json:"stock"`
	StockLow  bool        `json:"stockLow"`
	Variants  VariantList `json:"lowVariants"`
}

type LowStockAlertReport struct {
	Threshold int             `json:"threshold"`
	Count     int             `json:"count"`
	Items     []LowStockEntry `json:"items"`
}
