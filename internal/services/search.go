package service

import (
	"context"
	"sort"
	"unicode/utf8"

	appErrors "github.com/marketbase/catalog-api/internal/errors"
	"github.com/marketbase/catalog-api/internal/models"
	repository "github.com/marketbase/catalog-api/internal/repositories"
)

type SearchService interface {
	Search(ctx context.Context, filter *models.SearchFilter) (*models.SearchResult, error)
	Suggest(ctx context.Context, term string, limit int) ([]models.Suggestion, error)
	SearchByVariant(ctx context.Context, size, color string, inStock bool) ([]*models.Product, error)
	LowStockProducts(ctx context.Context, threshold int) ([]*models.Product, error)
	LowStockReport(ctx context.Context, threshold int) ([]models.LowStockEntry, error)
}

type searchService struct {
	repo repository.ProductRepository
}

func NewSearchService(repo repository.ProductRepository) SearchService {
	return &searchService{repo: repo}
}

func (s *searchService) Search(ctx context.Context, filter *models.SearchFilter) (*models.SearchResult, error) {

	filter.Normalize()

	products, total, err := s.repo.SearchProducts(ctx, filter)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to search products").WithError(err)
	}

	if products == nil {
		products = []*models.Product{}
	}

	totalPages := (total + filter.PageSize - 1) / filter.PageSize

	return &models.SearchResult{
		Products:   products,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
		Total:      total,
		HasMore:    filter.Page < totalPages,
	}, nil
}

// Suggest returns up to limit name matches. A term shorter than two runes
// yields an empty result, not an error.
func (s *searchService) Suggest(ctx context.Context, term string, limit int) ([]models.Suggestion, error) {

	if utf8.RuneCountInString(term) < models.MinSuggestTermLength {
		return []models.Suggestion{}, nil
	}

	if limit < 1 {
		limit = models.DefaultSuggestLimit
	}

	suggestions, err := s.repo.SuggestNames(ctx, term, limit)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch suggestions").WithError(err)
	}

	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}

	return suggestions, nil
}

func (s *searchService) SearchByVariant(ctx context.Context, size, color string, inStock bool) ([]*models.Product, error) {

	if size == "" && color == "" {
		return nil, appErrors.ValidationError("At least one of size or color is required")
	}

	products, err := s.repo.FindByVariant(ctx, size, color, inStock)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to search variants").WithError(err)
	}

	if products == nil {
		products = []*models.Product{}
	}

	return products, nil
}

// LowStockProducts returns every product whose main stock or any variant
// stock sits below the threshold. The store answers with one OR-combined
// query, so each product appears exactly once; the result is then ordered
// main-stock-low first, variant-only matches after, keeping fetch order
// inside each group.
func (s *searchService) LowStockProducts(ctx context.Context, threshold int) ([]*models.Product, error) {

	if threshold < 1 {
		threshold = models.DefaultLowStockLevel
	}

	products, err := s.repo.FindLowStock(ctx, threshold)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch low stock products").WithError(err)
	}

	ordered := make([]*models.Product, 0, len(products))

	for _, p := range products {
		if p.Stock < threshold {
			ordered = append(ordered, p)
		}
	}

	for _, p := range products {
		if p.Stock >= threshold {
			ordered = append(ordered, p)
		}
	}

	return ordered, nil
}

// LowStockReport is the variant-aware mode: per product it marks whether the
// main stock is low and keeps only the individually low variants, sorted by
// ascending severity.
func (s *searchService) LowStockReport(ctx context.Context, threshold int) ([]models.LowStockEntry, error) {

	if threshold < 1 {
		threshold = models.DefaultLowStockLevel
	}

	products, err := s.repo.FindLowStock(ctx, threshold)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch low stock products").WithError(err)
	}

	return buildLowStockEntries(products, threshold), nil
}

func buildLowStockEntries(products []*models.Product, threshold int) []models.LowStockEntry {

	entries := make([]models.LowStockEntry, 0, len(products))

	for _, p := range products {
		low := make(models.VariantList, 0)

		for _, v := range p.Variants {
			if v.Stock < threshold {
				low = append(low, v)
			}
		}

		entries = append(entries, models.LowStockEntry{
			ProductID: p.ID,
			Name:      p.Name,
			Stock:     p.Stock,
			StockLow:  p.Stock < threshold,
			Variants:  low,
		})
	}

	sortBySeverity(entries)

	return entries
}

// severityKey ranks an entry for the alert sort: main-stock-low products
// first keyed by main stock, then variant-only products keyed by their
// single lowest variant stock, anything else last.
func severityKey(e *models.LowStockEntry) (int, int) {

	if e.StockLow {
		return 0, e.Stock
	}

	if len(e.Variants) > 0 {
		lowest := e.Variants[0].Stock
		for _, v := range e.Variants[1:] {
			if v.Stock < lowest {
				lowest = v.Stock
			}
		}

		return 1, lowest
	}

	return 2, 0
}

func sortBySeverity(entries []models.LowStockEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		groupI, keyI := severityKey(&entries[i])
		groupJ, keyJ := severityKey(&entries[j])

		if groupI != groupJ {
			return groupI < groupJ
		}

		return keyI < keyJ
	})
}
