package main

import (
	"log"
	"time"

	"distrisync/internal/config"
	"distrisync/internal/database"
	"distrisync/internal/handlers"
	"distrisync/internal/redis"
	"distrisync/internal/repository"
	"distrisync/internal/services"
	"distrisync/pkg/backend"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Open the local offline store
	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to open local database:", err)
	}
	store := repository.NewStore(db)

	// Initialize Redis session cache
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize backend API client
	apiClient := backend.NewClient(cfg.BackendAPIURL)

	// Initialize services
	sessionService := services.NewSessionService(apiClient, redisClient, time.Duration(cfg.SessionTTLSeconds)*time.Second)
	reconcileService := services.NewReconcileService(store)
	syncService := services.NewSyncService(store, apiClient, sessionService, reconcileService, redisClient)
	scheduler := services.NewSyncScheduler(syncService, time.Duration(cfg.SyncIntervalSeconds)*time.Second)
	sessionService.AttachScheduler(scheduler)
	clientService := services.NewClientService(store)
	orderService := services.NewOrderService(store)
	cartService := services.NewCartService(store, scheduler)
	catalogService := services.NewCatalogService(store)

	// Initialize handlers
	apiHandler := handlers.NewAPIHandler(sessionService, syncService, clientService, orderService, cartService, catalogService)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/auth/login", apiHandler.Login)
		api.POST("/auth/offline-login", apiHandler.OfflineLogin)
		api.POST("/auth/logout", apiHandler.Logout)

		api.POST("/sync/run", apiHandler.RunSync)
		api.POST("/sync/history", apiHandler.ImportHistory)
		api.GET("/sync/status", apiHandler.SyncStatus)

		api.GET("/clientes", apiHandler.ListClients)
		api.POST("/clientes", apiHandler.CreateClient)
		api.PUT("/clientes/:local_id", apiHandler.UpdateClient)

		api.GET("/productos", apiHandler.ListProducts)
		api.GET("/productos/:id", apiHandler.GetProduct)
		api.GET("/listas-precios", apiHandler.ListPriceLists)

		api.GET("/pedidos", apiHandler.ListOrders)
		api.POST("/pedidos", apiHandler.SaveOrder)
		api.GET("/pedidos/:local_id", apiHandler.GetOrder)
		api.POST("/pedidos/:local_id/editar", apiHandler.LoadOrderForEdit)

		api.GET("/carrito/:cliente_local_id", apiHandler.GetCart)
		api.PUT("/carrito/:cliente_local_id", apiHandler.UpdateCart)
		api.PUT("/carrito/:cliente_local_id/notas", apiHandler.UpdateCartNotes)
		api.DELETE("/carrito/:cliente_local_id", apiHandler.DiscardCart)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
