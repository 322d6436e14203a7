package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/marketbase/catalog-api/docs"
	"github.com/marketbase/catalog-api/internal/api/handlers"
	"github.com/marketbase/catalog-api/internal/api/middleware"
	"github.com/marketbase/catalog-api/internal/config"
	"github.com/marketbase/catalog-api/internal/health"
	"github.com/marketbase/catalog-api/internal/metrics"
	repository "github.com/marketbase/catalog-api/internal/repositories"
	service "github.com/marketbase/catalog-api/internal/services"
	"github.com/marketbase/catalog-api/internal/tracing"
	"github.com/marketbase/catalog-api/pkg/sendgrid"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title			MarketBase Catalog API
//	@version		1.0
//	@description	REST backend for a product catalog: categories, inventory reconciliation, faceted search and stock reporting.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup, a no-op when no exporter endpoint is configured
	shutdownTracing, err := tracing.Setup(context.Background(), cfg.Otel)
	if err != nil {
		slog.Error("❌ Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Database setup
	repos, userRepo, productRepo, categoryRepo, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	jwtKey := []byte(cfg.Security.JWTKey)
	jwtExpiry := time.Duration(cfg.Security.JWTExpiryHours) * time.Hour
	mailClient := sendgrid.NewClient(cfg.Sendgrid.APIKey, cfg.Sendgrid.FromEmail, cfg.Sendgrid.FromName)
	userService := service.NewUserService(userRepo, rateLimitRepo, jwtKey, jwtExpiry)
	userHandler := handlers.NewUserHandler(userService)
	productService := service.NewProductService(productRepo)
	productHandler := handlers.NewProductHandler(productService)
	categoryService := service.NewCategoryService(categoryRepo)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	searchService := service.NewSearchService(productRepo)
	searchHandler := handlers.NewSearchHandler(searchService)
	inventoryService := service.NewInventoryService(productRepo)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, searchService)
	reportService := service.NewReportService(productRepo, mailClient, cfg.Alerts)
	reportHandler := handlers.NewReportHandler(reportService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		DB:          repos.DB,
		RedisClient: redisClient,
		Mailer:      mailClient,
	})
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	admin := func(next http.Handler) http.HandlerFunc {
		return authMiddleware.Authenticate(authMiddleware.RequireAdmin(next))
	}

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("POST /api/v1/products", admin(productHandler.CreateProduct()))
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("PUT /api/v1/products/{id}", admin(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", admin(productHandler.DeleteProduct()))
	routerMux.HandleFunc("GET /api/v1/products/search", searchHandler.SearchProducts())
	routerMux.HandleFunc("GET /api/v1/products/search/variants", searchHandler.SearchByVariants())
	routerMux.HandleFunc("GET /api/v1/products/suggestions", searchHandler.Suggestions())
	routerMux.HandleFunc("POST /api/v1/categories", admin(categoryHandler.CreateCategory()))
	routerMux.HandleFunc("GET /api/v1/categories", categoryHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/categories/{id}", categoryHandler.GetCategory())
	routerMux.HandleFunc("PUT /api/v1/categories/{id}", admin(categoryHandler.UpdateCategory()))
	routerMux.HandleFunc("DELETE /api/v1/categories/{id}", admin(categoryHandler.DeleteCategory()))
	routerMux.HandleFunc("GET /api/v1/inventory", admin(inventoryHandler.ListInventory()))
	routerMux.HandleFunc("PATCH /api/v1/inventory/bulk", admin(inventoryHandler.BulkUpdateInventory()))
	routerMux.HandleFunc("PATCH /api/v1/inventory/{id}", admin(inventoryHandler.UpdateInventory()))
	routerMux.HandleFunc("GET /api/v1/inventory/low-stock", admin(inventoryHandler.LowStock()))
	routerMux.HandleFunc("GET /api/v1/reports/inventory-value", admin(reportHandler.InventoryValue()))
	routerMux.HandleFunc("GET /api/v1/reports/stock-levels", admin(reportHandler.StockLevels()))
	routerMux.HandleFunc("GET /api/v1/reports/low-stock-alert", admin(reportHandler.LowStockAlert()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Middleware chaining, outermost last: the otel handler opens the span
	// before the request logger reads it
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() { // Starts the HTTP server in a new goroutine so it doesn't block the main thread.

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done // blocking, until no signal is added to "done" channel, after the some signal is received the code after this point would be executed

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
