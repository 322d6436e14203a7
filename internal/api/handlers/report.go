package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/marketbase/catalog-api/internal/api/middleware"
	service "github.com/marketbase/catalog-api/internal/services"
	"github.com/marketbase/catalog-api/internal/utils/response"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// InventoryValue godoc
//	@Summary		Inventory value report
//	@Description	Totals price times stock across the catalog, counting main and variant stock, with per-category subtotals in first-seen order.
//	@Tags			Reports
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	models.InventoryValueReport	"Value report"
//	@Failure		401	{object}	response.ErrorResponse		"Unauthorized"
//	@Failure		403	{object}	response.ErrorResponse		"Admin access required"
//	@Failure		500	{object}	response.ErrorResponse		"Internal server error"
//	@Router			/reports/inventory-value [get]
func (h *ReportHandler) InventoryValue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		report, err := h.reportService.InventoryValue(r.Context())
		if err != nil {
			logger.Error("Failed to build inventory value report", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Inventory value report built",
			slog.Float64("totalValue", report.TotalValue),
			slog.Int("categories", len(report.Categories)))
		response.Success(w, http.StatusOK, report)
	}
}

// StockLevels godoc
//	@Summary		Stock level report
//	@Description	Buckets products by main stock (0, 1-5, 6-20, >20) with a few example names per bucket, plus total, max, min and average stock counting variants.
//	@Tags			Reports
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	models.StockLevelReport	"Stock level report"
//	@Failure		401	{object}	response.ErrorResponse	"Unauthorized"
//	@Failure		403	{object}	response.ErrorResponse	"Admin access required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/reports/stock-levels [get]
func (h *ReportHandler) StockLevels() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		report, err := h.reportService.StockLevels(r.Context())
		if err != nil {
			logger.Error("Failed to build stock level report", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, report)
	}
}

// LowStockAlert godoc
//	@Summary		Low-stock alert report
//	@Description	Builds the low-stock report ordered by severity and, when alerting is configured, emails it to the operations recipient. A mail failure is logged but never fails the request.
//	@Tags			Reports
//	@Produce		json
//	@Security		BearerAuth
//	@Param			threshold	query		int							false	"Stock threshold (default: 10)"	minimum(1)
//	@Success		200			{object}	models.LowStockAlertReport	"Low-stock report"
//	@Failure		401			{object}	response.ErrorResponse		"Unauthorized"
//	@Failure		403			{object}	response.ErrorResponse		"Admin access required"
//	@Failure		500			{object}	response.ErrorResponse		"Internal server error"
//	@Router			/reports/low-stock-alert [get]
func (h *ReportHandler) LowStockAlert() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		threshold, _ := strconv.Atoi(r.URL.Query().Get("threshold"))

		report, err := h.reportService.LowStockAlert(r.Context(), threshold)
		if err != nil {
			logger.Error("Failed to build low-stock alert report", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Low-stock alert report built",
			slog.Int("threshold", report.Threshold),
			slog.Int("count", report.Count))
		response.Success(w, http.StatusOK, report)
	}
}
