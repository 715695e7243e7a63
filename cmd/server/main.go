package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"restaurant-pos/config"
	"restaurant-pos/internal/database"
	"restaurant-pos/internal/gateway/handlers"
	"restaurant-pos/internal/gateway/middleware"
	catalog "restaurant-pos/internal/services/catalog/handler"
	customers "restaurant-pos/internal/services/customers/handler"
	orders "restaurant-pos/internal/services/orders/handler"
	stats "restaurant-pos/internal/services/stats/handler"
	tables "restaurant-pos/internal/services/tables/handler"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate POS database: %v", err)
	}

	redisClient := config.NewRedisClient(cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}

	catalogHandler := handlers.NewCatalogHTTPHandler(catalog.NewCatalogHandler(db, redisClient))
	orderHandler := handlers.NewOrderHTTPHandler(orders.NewOrderHandler(db))
	tableHandler := handlers.NewTableHTTPHandler(tables.NewTableHandler(db))
	customerHandler := handlers.NewCustomerHTTPHandler(customers.NewCustomerHandler(db))
	statsHandler := handlers.NewStatsHTTPHandler(stats.NewStatsHandler(db))

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit(cfg.Server.RateLimit))

	api := r.Group("/api/v1")
	{
		categories := api.Group("/categories")
		{
			categories.GET("", catalogHandler.ListCategories)
			categories.POST("", catalogHandler.CreateCategory)
			categories.PUT("/:id", catalogHandler.UpdateCategory)
			categories.DELETE("/:id", catalogHandler.DeleteCategory)
		}

		products := api.Group("/products")
		{
			products.GET("", catalogHandler.ListProducts)
			products.POST("", catalogHandler.CreateProduct)
			products.GET("/:id", catalogHandler.GetProduct)
			products.PUT("/:id", catalogHandler.UpdateProduct)
			products.DELETE("/:id", catalogHandler.DeleteProduct)
		}

		orderRoutes := api.Group("/orders")
		{
			orderRoutes.GET("", orderHandler.ListOrders)
			orderRoutes.GET("/active", orderHandler.ListActiveOrders)
			orderRoutes.POST("", orderHandler.CreateOrder)
			orderRoutes.GET("/:id", orderHandler.GetOrder)
			orderRoutes.PUT("/:id", orderHandler.UpdateOrder)
			orderRoutes.POST("/:id/items", orderHandler.AddOrderItem)
			orderRoutes.PUT("/:id/status", orderHandler.UpdateOrderStatus)
			orderRoutes.POST("/:id/payment", orderHandler.PayOrder)
		}

		api.POST("/checkout", orderHandler.Checkout)

		tableRoutes := api.Group("/tables")
		{
			tableRoutes.GET("", tableHandler.ListTables)
			tableRoutes.POST("", tableHandler.CreateTable)
			tableRoutes.GET("/:id", tableHandler.GetTable)
			tableRoutes.PUT("/:id", tableHandler.UpdateTable)
			tableRoutes.DELETE("/:id", tableHandler.DeleteTable)
			tableRoutes.PUT("/:id/status", tableHandler.UpdateTableStatus)
		}

		customerRoutes := api.Group("/customers")
		{
			customerRoutes.GET("", customerHandler.ListCustomers)
			customerRoutes.POST("", customerHandler.CreateCustomer)
		}

		api.GET("/stats", statsHandler.GetStats)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"message":   "Server is running",
			"timestamp": time.Now(),
		})
	})

	addr := ":" + cfg.Server.Port
	log.Printf("Starting POS server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
