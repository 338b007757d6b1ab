// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/elite1357/store-backend/internal/config"
	"github.com/elite1357/store-backend/internal/handlers"
	"github.com/elite1357/store-backend/internal/middleware"
	"github.com/elite1357/store-backend/internal/services"
	"github.com/elite1357/store-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize storage service")
	}

	authService := services.NewAuthService(db, cfg)
	catalogService := services.NewCatalogService(db)
	cartService := services.NewCartService(db)
	checkoutService := services.NewCheckoutService(db, cfg, cartService, notificationService)
	favouriteService := services.NewFavouriteService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, cartService, catalogService)
	favouriteHandler := handlers.NewFavouriteHandler(favouriteService, notificationService)
	adminHandler := handlers.NewAdminHandler(catalogService, storageService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Catalog routes
		v1.GET("/categories", catalogHandler.ListCategories)
		v1.GET("/categories/:slug", catalogHandler.GetCategory)
		v1.GET("/cities", catalogHandler.ListCities)

		products := v1.Group("/products")
		{
			products.GET("", catalogHandler.ListProducts)
			products.GET("/:slug", catalogHandler.GetProduct)
			products.GET("/:slug/related", catalogHandler.GetRelatedProducts)
			products.GET("/:slug/reviews", catalogHandler.ListReviews)
			products.POST("/:slug/reviews", middleware.AuthRequired(), catalogHandler.CreateReview)
		}

		// Favourites
		favourites := v1.Group("/favourites")
		favourites.Use(middleware.AuthRequired())
		{
			favourites.GET("", favouriteHandler.ListFavourites)
			favourites.POST("/:slug", favouriteHandler.ToggleFavourite)
		}

		// Mailing list
		v1.POST("/subscriptions", middleware.OptionalAuth(), favouriteHandler.Subscribe)
		v1.POST("/subscriptions/broadcast", middleware.AuthRequired(), middleware.AdminRequired(), favouriteHandler.Broadcast)

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired())
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("/items/:product_id/:action", cartHandler.AdjustItem)
			cart.POST("/clear", cartHandler.ClearCart)
		}

		// Checkout routes
		checkout := v1.Group("/checkout")
		checkout.Use(middleware.AuthRequired())
		{
			checkout.GET("", checkoutHandler.GetCheckout)
			checkout.POST("/session", middleware.CheckoutRateLimit(), checkoutHandler.CreateSession)
			checkout.GET("/success", checkoutHandler.PaymentSuccess)
		}

		// Stripe webhook, authenticated by signature instead of JWT
		v1.POST("/webhooks/stripe", checkoutHandler.StripeWebhook)

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired())
		admin.Use(middleware.AdminRequired())
		{
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)
			admin.POST("/products/:id/images", middleware.UploadRateLimit(), adminHandler.UploadProductImage)
		}
	}

	return r
}
