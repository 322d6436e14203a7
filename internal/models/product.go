package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Variant is a per-size/color stock record owned by its product. The pair
// (Size, Color) identifies a variant inside one product.
type Variant struct {
	Size  string `json:"size"`
	Color string `json:"color"`
	Stock int    `json:"stock"`
}

// VariantList maps the variants JSONB column. Variants live embedded in the
// product row and have no lifecycle of their own.
type VariantList []Variant

func (v VariantList) Value() (driver.Value, error) {
	if v == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(v)
}

func (v *VariantList) Scan(src any) error {
	if src == nil {
		*v = VariantList{}
		return nil
	}

	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported variants column type %T", src)
	}

	return json.Unmarshal(data, v)
}

// Find returns the variant matching the (size, color) key, or nil.
func (v VariantList) Find(size, color string) *Variant {
	for i := range v {
		if v[i].Size == size && v[i].Color == color {
			return &v[i]
		}
	}

	return nil
}

// TotalStock sums stock across all variants, main stock excluded.
func (v VariantList) TotalStock() int {
	total := 0
	for i := range v {
		total += v[i].Stock
	}

	return total
}

type Product struct {
	ID                uuid.UUID   `json:"id"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Price             float64     `json:"price"`
	Stock             int         `json:"stock"`
	InventoryLocation string      `json:"inventory_location,omitempty"`
	InventoryStatus   string      `json:"inventory_status,omitempty"`
	CategoryID        *uuid.UUID  `json:"category_id,omitempty"`
	Category          *Category   `json:"category,omitempty"`
	Variants          VariantList `json:"variants"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

type CreateProductRequest struct {
	Name        string             `json:"name" validate:"required,min=2,max=200"`
	Description string             `json:"description,omitempty"`
	Price       float64            `json:"price" validate:"gte=0"`
	Stock       int                `json:"stock" validate:"gte=0"`
	Location    string             `json:"inventory_location,omitempty"`
	Status      string             `json:"inventory_status,omitempty"`
	CategoryID  *uuid.UUID         `json:"category_id,omitempty"`
	Variants    []CreateVariantReq `json:"variants,omitempty" validate:"omitempty,dive"`
}

type CreateVariantReq struct {
	Size  string `json:"size" validate:"required"`
	Color string `json:"color" validate:"required"`
	Stock int    `json:"stock" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string    `json:"description,omitempty"`
	Price       *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock       *int       `json:"stock,omitempty" validate:"omitempty,gte=0"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty"`
}
