package models

import "github.com/google/uuid"

type SortMode string

const (
	SortNewest    SortMode = "newest"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
	SortNameAsc   SortMode = "name_asc"
)

const (
	DefaultPageSize      = 10
	DefaultSuggestLimit  = 5
	DefaultLowStockLevel = 10
	MinSuggestTermLength = 2
)

// SearchFilter is the typed faceted-search input. Nil pointer fields mean
// "no constraint"; zero strings mean the facet was not supplied.
type SearchFilter struct {
	Keyword    string
	CategoryID *uuid.UUID
	MinPrice   *float64
	MaxPrice   *float64
	InStock    *bool
	Size       string
	Color      string
	Sort       SortMode
	Page       int
	PageSize   int
}

// Normalize fills in pagination and sort defaults.
func (f *SearchFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}

	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = DefaultPageSize
	}

	switch f.Sort {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNewest:
	default:
		f.Sort = SortNewest
	}
}

// HasVariantFacet reports whether the filter constrains the variants array.
func (f *SearchFilter) HasVariantFacet() bool {
	return f.Size != "" || f.Color != ""
}

type SearchResult struct {
	Products   []*Product `json:"products"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalPages int        `json:"totalPages"`
	Total      int        `json:"total"`
	HasMore    bool       `json:"hasMore"`
}

type Suggestion struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
