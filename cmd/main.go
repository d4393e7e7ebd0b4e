package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"tablemate/internal/caching"
	"tablemate/internal/handlers"
	"tablemate/internal/jobs"
	"tablemate/internal/jobs/background"
	"tablemate/internal/middleware"
	"tablemate/internal/models"
	"tablemate/internal/realtime"
	"tablemate/internal/repositories"
	"tablemate/internal/services"
	"tablemate/pkg/database"
)

const version = "1.0.0"

func main() {
	ctx := context.Background()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioBucket := os.Getenv("MINIO_BUCKET")
	if minioBucket == "" {
		minioBucket = "tablemate-media"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	mediaSvc, err := services.NewMediaService(minioEndpoint, minioAccessKey, minioSecretKey, minioBucket, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize media service: %v", err)
	}
	if err := mediaSvc.EnsureBucket(ctx); err != nil {
		log.Printf("WARNING: media bucket check failed: %v", err)
	}

	// Repositories
	store := repositories.NewStore(pool)
	txManager := repositories.NewTxManager(pool)
	restaurantRepo := repositories.NewRestaurantRepo(pool)

	// Cache and realtime
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)
	hub := realtime.NewHub()

	// Services
	notifier := services.NewNotifier(store.Notifications, store.Users, hub)
	orderSvc := services.NewOrderService(store, txManager, notifier)
	billingSvc := services.NewBillingService(store, txManager, notifier)
	notificationSvc := services.NewNotificationService(store.Notifications, cacheSvc)
	menuSvc := services.NewMenuService(store.MenuItems, store.Stocks, cacheSvc)
	stockSvc := services.NewStockService(store.Stocks)
	tableSvc := services.NewTableService(store.Tables)

	// Handlers
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	billHandlers := handlers.NewBillHandlers(billingSvc)
	notificationHandlers := handlers.NewNotificationHandlers(notificationSvc)
	menuHandlers := handlers.NewMenuHandlers(menuSvc, mediaSvc)
	stockHandlers := handlers.NewStockHandlers(stockSvc, mediaSvc)
	tableHandlers := handlers.NewTableHandlers(tableSvc)
	realtimeHandlers := handlers.NewRealtimeHandlers(hub, jwtSecret)

	// Background jobs
	stockAlertThreshold := 10
	if t := os.Getenv("STOCK_ALERT_THRESHOLD"); t != "" {
		if n, err := strconv.Atoi(t); err == nil {
			stockAlertThreshold = n
		}
	}
	stockAlerts := jobs.NewStockAlertService(store.Stocks, restaurantRepo, notifier, stockAlertThreshold)
	scheduler, err := background.NewJobScheduler(stockAlerts)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", handlers.HealthCheck)
	e.GET("/health/ready", func(c echo.Context) error {
		return handlers.ReadinessCheck(c, pool)
	})

	// Realtime push (token authenticated in the handshake)
	e.GET("/ws", realtimeHandlers.Connect)

	v1 := e.Group("/v1")
	protected := v1.Group("")
	protected.Use(middleware.JWTMiddleware(jwtSecret))

	managers := middleware.RequireRole(models.RoleAdmin, models.RoleManager)
	orderRoles := middleware.RequireRole(models.RoleAdmin, models.RoleManager, models.RoleWaiter)
	staff := middleware.RequireRole(models.RoleAdmin, models.RoleManager, models.RoleWaiter,
		models.RoleBartender, models.RoleKitchenStaff)

	// Order routes
	protected.POST("/orders", orderHandlers.CreateOrder, orderRoles)
	protected.GET("/orders/active", orderHandlers.GetActiveOrders, staff)
	protected.GET("/orders/history", orderHandlers.GetOrderHistory, staff)
	protected.GET("/orders/:id", orderHandlers.GetOrder, staff)
	protected.PATCH("/orders/:id/status", orderHandlers.UpdateOrderStatus, staff)
	protected.POST("/orders/:id/items", orderHandlers.AddOrderItem, orderRoles)
	protected.PATCH("/orders/items/:itemId", orderHandlers.UpdateOrderItem, orderRoles)
	protected.DELETE("/orders/items/:itemId", orderHandlers.RemoveOrderItem, orderRoles)

	// Table routes
	protected.POST("/tables", tableHandlers.CreateTable, managers)
	protected.GET("/tables", tableHandlers.ListTables, staff)
	protected.GET("/tables/:id", tableHandlers.GetTable, staff)
	protected.PUT("/tables/:id", tableHandlers.UpdateTable, managers)
	protected.DELETE("/tables/:id", tableHandlers.DeleteTable, managers)
	protected.GET("/tables/:id/orders", orderHandlers.GetActiveOrdersByTable, staff)
	protected.POST("/tables/:id/request-payment", billHandlers.RequestPayment, orderRoles)

	// Billing routes
	protected.POST("/bills", billHandlers.GenerateBill, orderRoles)

	// Menu routes
	protected.GET("/menu", menuHandlers.ListMenuItems, staff)
	protected.GET("/menu/:id", menuHandlers.GetMenuItem, staff)
	protected.POST("/menu", menuHandlers.CreateMenuItem, managers)
	protected.PUT("/menu/:id", menuHandlers.UpdateMenuItem, managers)
	protected.DELETE("/menu/:id", menuHandlers.DeleteMenuItem, managers)
	protected.POST("/menu/:id/image", menuHandlers.UploadMenuItemImage, managers)

	// Stock routes
	protected.GET("/stocks", stockHandlers.ListStocks, staff)
	protected.GET("/stocks/:id", stockHandlers.GetStock, staff)
	protected.POST("/stocks", stockHandlers.CreateStock, managers)
	protected.POST("/stocks/:id/adjust", stockHandlers.AdjustStock, middleware.RequirePermission("stock:adjust"))
	protected.POST("/stocks/:id/image", stockHandlers.UploadStockImage, managers)

	// Notification routes
	protected.GET("/notifications", notificationHandlers.ListNotifications, staff)
	protected.GET("/notifications/unread-count", notificationHandlers.GetUnreadCount, staff)
	protected.POST("/notifications/:id/read", notificationHandlers.MarkRead, staff)
	protected.POST("/notifications/read-all", notificationHandlers.MarkAllRead, staff)

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Tablemate server v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
