package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BuildMate/matgate/internal/cache"
	"github.com/BuildMate/matgate/internal/catalog"
	"github.com/BuildMate/matgate/internal/config"
	"github.com/BuildMate/matgate/internal/handler"
	"github.com/BuildMate/matgate/internal/middleware"
	"github.com/BuildMate/matgate/internal/pkg/logger"
	"github.com/BuildMate/matgate/internal/ratelimit"
	"github.com/BuildMate/matgate/internal/repository"
	"github.com/BuildMate/matgate/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)

	// 2. Initialize Stores (Redis > Memory)
	cacheTTL := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	var limiterStore ratelimit.Store
	var pricingCache cache.Store
	if cfg.Redis.Addr != "" {
		redisClient, err := repository.NewRedisClient(cfg)
		if err == nil {
			logger.Info("Connected to Redis")
			limiterStore = ratelimit.NewRedisStore(redisClient)
			pricingCache = cache.NewRedisStore(redisClient, cacheTTL)
		} else {
			logger.Error("Failed to connect to Redis, falling back to memory", "error", err)
		}
	}
	if limiterStore == nil {
		limiterStore = ratelimit.NewMemoryStore()
	}
	if pricingCache == nil {
		pricingCache = cache.NewMemoryStore(cacheTTL)
	}

	// Audit Persistence (Postgres > Local File)
	var auditRepo service.AuditRepo
	if cfg.Database.DSN != "" {
		db, err := repository.NewDB(cfg)
		if err == nil {
			logger.Info("Connected to PostgreSQL")
			auditRepo = repository.NewPostgresAuditRepo(db)
		} else {
			logger.Error("Failed to connect to DB, audit logs will be file-only", "error", err)
		}
	}

	// 3. Initialize Core Services
	// One table source feeds both the catalog and pricing paths; the
	// per-endpoint tables this replaced had drifted apart numerically.
	logger.Info("Regional and tier tables loaded from unified source")
	cat := catalog.New()
	stockGen := catalog.NewSeededStockGenerator(cfg.Pricing.StockSeed)

	catalogLimiter := ratelimit.New(limiterStore, "catalog", cfg.RateLimit.CatalogPerHour)
	pricingLimiter := ratelimit.New(limiterStore, "pricing", cfg.RateLimit.PricingPerHour)
	throttle := rate.NewLimiter(rate.Limit(cfg.Throttle.RPS), cfg.Throttle.Burst)

	auditSvc, err := service.NewAuditService(cfg.Audit.Dir, auditRepo)
	if err != nil {
		log.Fatalf("Failed to initialize audit service: %v", err)
	}

	catalogSvc := service.NewCatalogService(cat, stockGen, cfg)
	pricingSvc := service.NewPricingService(cat, pricingCache, cfg)

	// 4. Initialize Handlers
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	pricingHandler := handler.NewPricingHandler(pricingSvc)
	auditHandler := handler.NewAuditHandler(auditSvc)

	// 5. Setup Router
	r := gin.Default()

	// Global Middleware
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.AuditMiddleware(auditSvc))
	r.Use(middleware.ThrottleMiddleware(throttle))

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "matgate"})
	})

	// Metrics Endpoint
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// Materials API
	materials := r.Group("/materials")
	{
		materials.GET("/catalog",
			middleware.RateLimitMiddleware(catalogLimiter, "catalog"),
			catalogHandler.Browse)
		materials.POST("/bulk-pricing",
			middleware.RateLimitMiddleware(pricingLimiter, "pricing"),
			pricingHandler.BulkPricing)
		materials.GET("/affiliate/:id",
			middleware.RateLimitMiddleware(catalogLimiter, "catalog"),
			catalogHandler.GetAffiliate)
	}

	admin := r.Group("/admin")
	{
		admin.GET("/audit", auditHandler.List)
	}

	// 6. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("MatGate started", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server listen failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	auditSvc.Close()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	logger.Info("Server exiting")
}
