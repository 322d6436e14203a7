package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/marketbase/catalog-api/internal/api/middleware"
	"github.com/marketbase/catalog-api/internal/config"
	appErrors "github.com/marketbase/catalog-api/internal/errors"
	"github.com/marketbase/catalog-api/internal/metrics"
	"github.com/marketbase/catalog-api/internal/models"
	repository "github.com/marketbase/catalog-api/internal/repositories"
)

// uncategorizedLabel groups products without a category in the value report.
const uncategorizedLabel = "Uncategorized"

// AlertMailer delivers low-stock notifications to operators. pkg/sendgrid
// carries the production implementation.
type AlertMailer interface {
	SendAlert(ctx context.Context, to, subject, content string) error
}

type ReportService interface {
	InventoryValue(ctx context.Context) (*models.InventoryValueReport, error)
	StockLevels(ctx context.Context) (*models.StockLevelReport, error)
	LowStockAlert(ctx context.Context, threshold int) (*models.LowStockAlertReport, error)
}

type reportService struct {
	repo   repository.ProductRepository
	mailer AlertMailer
	alerts config.Alerts
}

func NewReportService(repo repository.ProductRepository, mailer AlertMailer, alerts config.Alerts) ReportService {
	return &reportService{repo: repo, mailer: mailer, alerts: alerts}
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// InventoryValue totals price × stock across the catalog, counting the main
// stock and every variant stock. Subtotals are grouped by category name in
// first-seen order; products without a category land under "Uncategorized".
func (s *reportService) InventoryValue(ctx context.Context) (*models.InventoryValueReport, error) {

	products, err := s.repo.ListAllProducts(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	var total float64
	subtotals := make(map[string]float64)
	order := make([]string, 0)

	for _, p := range products {
		value := p.Price*float64(p.Stock) + p.Price*float64(p.Variants.TotalStock())

		label := uncategorizedLabel
		if p.Category != nil {
			label = p.Category.Name
		}

		if _, seen := subtotals[label]; !seen {
			order = append(order, label)
		}

		subtotals[label] += value
		total += value
	}

	categories := make([]models.CategoryValue, 0, len(order))
	for _, label := range order {
		categories = append(categories, models.CategoryValue{
			Category: label,
			Value:    roundMoney(subtotals[label]),
		})
	}

	metrics.ObserveReportRun("inventory_value")

	return &models.InventoryValueReport{
		TotalValue:   roundMoney(total),
		Categories:   categories,
		ProductCount: len(products),
	}, nil
}

func bucketFor(stock int) string {
	switch {
	case stock == 0:
		return models.BucketOutOfStock
	case stock <= 5:
		return models.BucketLowStock
	case stock <= 20:
		return models.BucketMediumStock
	default:
		return models.BucketHighStock
	}
}

// StockLevels classifies every product's main stock into one bucket and
// aggregates stats over the flattened set of all stock numbers, main and
// variant alike.
func (s *reportService) StockLevels(ctx context.Context) (*models.StockLevelReport, error) {

	products, err := s.repo.ListAllProducts(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	labels := []string{models.BucketOutOfStock, models.BucketLowStock, models.BucketMediumStock, models.BucketHighStock}

	buckets := make(map[string]*models.StockBucket, len(labels))
	for _, label := range labels {
		buckets[label] = &models.StockBucket{Label: label, Examples: []models.BucketEntry{}}
	}

	stats := models.StockStats{}
	sampleSeen := false

	record := func(stock int) {
		stats.TotalStock += stock
		if stock > stats.MaxStock {
			stats.MaxStock = stock
		}
		if !sampleSeen || stock < stats.MinStock {
			stats.MinStock = stock
		}
		sampleSeen = true
	}

	for _, p := range products {
		bucket := buckets[bucketFor(p.Stock)]
		bucket.Count++

		if len(bucket.Examples) < models.BucketExampleCap {
			bucket.Examples = append(bucket.Examples, models.BucketEntry{
				ProductID: p.ID,
				Name:      p.Name,
				Stock:     p.Stock,
			})
		}

		record(p.Stock)
		for _, v := range p.Variants {
			record(v.Stock)
		}
	}

	// with no samples the zero-valued stats already report min 0
	if len(products) > 0 {
		stats.AveragePerProduct = float64(stats.TotalStock) / float64(len(products))
	}

	out := make([]models.StockBucket, 0, len(labels))
	for _, label := range labels {
		out = append(out, *buckets[label])
	}

	metrics.ObserveReportRun("stock_levels")

	return &models.StockLevelReport{
		Buckets:      out,
		Stats:        stats,
		ProductCount: len(products),
	}, nil
}

// LowStockAlert builds the variant-aware low-stock report and, when alert
// delivery is enabled, emails it to the configured recipient. Mail failure
// is logged and never fails the report.
func (s *reportService) LowStockAlert(ctx context.Context, threshold int) (*models.LowStockAlertReport, error) {

	if threshold < 1 {
		threshold = models.DefaultLowStockLevel
	}

	products, err := s.repo.FindLowStock(ctx, threshold)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch low stock products").WithError(err)
	}

	report := &models.LowStockAlertReport{
		Threshold: threshold,
		Items:     buildLowStockEntries(products, threshold),
	}
	report.Count = len(report.Items)

	metrics.ObserveReportRun("low_stock_alert")

	if s.alerts.Enabled && s.mailer != nil && report.Count > 0 {
		logger := middleware.LoggerFromContext(ctx)

		subject := fmt.Sprintf("Low stock alert: %d product(s) below %d", report.Count, threshold)

		if err := s.mailer.SendAlert(ctx, s.alerts.Recipient, subject, formatAlertBody(report)); err != nil {
			logger.Error("Failed to send low stock alert", slog.Any("error", err))
		} else {
			logger.Info("Low stock alert sent",
				slog.String("recipient", s.alerts.Recipient),
				slog.Int("count", report.Count))
		}
	}

	return report, nil
}

func formatAlertBody(report *models.LowStockAlertReport) string {

	var b strings.Builder

	fmt.Fprintf(&b, "%d product(s) below the stock threshold of %d:\n\n", report.Count, report.Threshold)

	for _, item := range report.Items {
		fmt.Fprintf(&b, "- %s (main stock %d)", item.Name, item.Stock)

		for _, v := range item.Variants {
			fmt.Fprintf(&b, " [%s/%s: %d]", v.Size, v.Color, v.Stock)
		}

		b.WriteString("\n")
	}

	return b.String()
}
