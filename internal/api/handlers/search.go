package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/marketbase/catalog-api/internal/api/middleware"
	"github.com/marketbase/catalog-api/internal/errors"
	"github.com/marketbase/catalog-api/internal/models"
	service "github.com/marketbase/catalog-api/internal/services"
	"github.com/marketbase/catalog-api/internal/utils/response"
	"github.com/google/uuid"
)

type SearchHandler struct {
	searchService service.SearchService
}

func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// parseSearchFilter maps the query string onto the typed filter. Malformed
// numeric or boolean values are rejected rather than silently dropped.
func parseSearchFilter(values url.Values) (*models.SearchFilter, error) {

	filter := &models.SearchFilter{
		Keyword: values.Get("q"),
		Size:    values.Get("size"),
		Color:   values.Get("color"),
		Sort:    models.SortMode(values.Get("sort")),
	}

	if raw := values.Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.BadRequestError("Invalid category_id filter").WithError(err)
		}

		filter.CategoryID = &id
	}

	if raw := values.Get("min_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.BadRequestError("Invalid min_price filter").WithError(err)
		}

		filter.MinPrice = &price
	}

	if raw := values.Get("max_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.BadRequestError("Invalid max_price filter").WithError(err)
		}

		filter.MaxPrice = &price
	}

	if raw := values.Get("in_stock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.BadRequestError("Invalid in_stock filter").WithError(err)
		}

		filter.InStock = &inStock
	}

	// pagination stays best-effort, the filter normalizes out-of-range values
	filter.Page, _ = strconv.Atoi(values.Get("page"))
	filter.PageSize, _ = strconv.Atoi(values.Get("pageSize"))

	return filter, nil
}

// SearchProducts godoc
//	@Summary		Search products with facets
//	@Description	Full faceted search: keyword over name and description, category, price range, variant size/color, stock availability, with sorting and pagination.
//	@Tags			Search
//	@Produce		json
//	@Param			q			query		string					false	"Keyword matched against name and description"
//	@Param			category_id	query		string					false	"Category filter (UUID)"	Format(uuid)
//	@Param			min_price	query		number					false	"Minimum price, inclusive"
//	@Param			max_price	query		number					false	"Maximum price, inclusive"
//	@Param			size		query		string					false	"Variant size facet"
//	@Param			color		query		string					false	"Variant color facet"
//	@Param			in_stock	query		boolean					false	"true keeps stocked products, false keeps sold-out ones"
//	@Param			sort		query		string					false	"Sort mode"	Enums(newest, price_asc, price_desc, name_asc)
//	@Param			page		query		int						false	"Page number for pagination (default: 1)"			minimum(1)
//	@Param			pageSize	query		int						false	"Number of items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success		200			{object}	models.SearchResult		"Search results"
//	@Failure		400			{object}	response.ErrorResponse	"Malformed filter value"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products/search [get]
func (h *SearchHandler) SearchProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		filter, err := parseSearchFilter(r.URL.Query())
		if err != nil {
			logger.Warn("Invalid search filter", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		result, err := h.searchService.Search(r.Context(), filter)
		if err != nil {
			logger.Error("Search failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Search completed",
			slog.String("keyword", filter.Keyword),
			slog.Int("total", result.Total))
		response.Success(w, http.StatusOK, result)
	}
}

// Suggestions godoc
//	@Summary		Autocomplete product names
//	@Description	Returns name suggestions for a prefix-or-substring term. Terms shorter than two characters yield an empty list.
//	@Tags			Search
//	@Produce		json
//	@Param			q		query		string					true	"Search term"
//	@Param			limit	query		int						false	"Maximum suggestions (default: 5)"	minimum(1)
//	@Success		200		{array}		models.Suggestion		"Suggestions"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products/suggestions [get]
func (h *SearchHandler) Suggestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		term := r.URL.Query().Get("q")
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		suggestions, err := h.searchService.Suggest(r.Context(), term, limit)
		if err != nil {
			logger.Error("Suggestion lookup failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, suggestions)
	}
}

// SearchByVariants godoc
//	@Summary		Find products by variant
//	@Description	Lists products carrying a variant that matches the given size and/or color, optionally restricted to variants with stock.
//	@Tags			Search
//	@Produce		json
//	@Param			size		query		string					false	"Variant size"
//	@Param			color		query		string					false	"Variant color"
//	@Param			in_stock	query		boolean					false	"Require the matching variant to have stock"
//	@Success		200			{array}		models.Product			"Matching products"
//	@Failure		400			{object}	response.ErrorResponse	"Neither size nor color supplied"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products/search/variants [get]
func (h *SearchHandler) SearchByVariants() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		size := r.URL.Query().Get("size")
		color := r.URL.Query().Get("color")
		inStock, _ := strconv.ParseBool(r.URL.Query().Get("in_stock"))

		products, err := h.searchService.SearchByVariant(r.Context(), size, color, inStock)
		if err != nil {
			logger.Warn("Variant search failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Variant search completed",
			slog.String("size", size),
			slog.String("color", color),
			slog.Int("count", len(products)))
		response.Success(w, http.StatusOK, products)
	}
}
