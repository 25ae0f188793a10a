package routes

import (
	"time"

	"issuecart-backend/handlers"
	"issuecart-backend/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize handlers
	productHandler := &handlers.ProductHandler{DB: db}
	cartHandler := &handlers.CartHandler{DB: db}
	customerHandler := &handlers.CustomerHandler{DB: db}

	// Session resolution runs on every route; anonymous requests pass through
	r.Use(middleware.SessionMiddleware(db))

	api := r.Group("/api")
	{
		// Storefront reads
		api.GET("/products", productHandler.GetProducts)
		api.GET("/cart", cartHandler.GetCart)

		// Development customer switch
		api.GET("/set-customer/:customer_id", customerHandler.SetCustomer)
	}

	// Cart mutations share a per-IP rate limit
	limiter := middleware.NewRateLimiter(60, time.Minute)
	cart := api.Group("/cart")
	cart.Use(limiter.Middleware())
	{
		cart.POST("/add/:product_id", cartHandler.AddToCart)
		cart.POST("/update/:item_id", cartHandler.UpdateCartItem)
		cart.POST("/remove/:item_id", cartHandler.RemoveFromCart)
	}

	// Back-office management (catalog and customer directory)
	admin := api.Group("/admin")
	{
		admin.GET("/customers", customerHandler.GetCustomers)
		admin.POST("/customers", customerHandler.CreateCustomer)
		admin.POST("/products", productHandler.CreateProduct)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
