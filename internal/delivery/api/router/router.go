// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/config"
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"
	deliverymiddleware "storefront/internal/delivery/middleware"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	DeviceHandler  *handler.DeviceHandler
	CartHandler    *handler.CartHandler
	PaymentHandler *handler.PaymentHandler
	OrderHandler   *handler.OrderHandler
	ProductHandler *handler.ProductHandler
	ReviewHandler  *handler.ReviewHandler
	ContentHandler *handler.ContentHandler
	MediaHandler   *handler.MediaHandler
	AdminHandler   *handler.AdminHandler
	FeedHandler    *handler.FeedHandler
	HealthHandler  *handler.HealthHandler
	TestHandler    *handler.TestHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *deliverymiddleware.RateLimitMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	deviceHandler  *handler.DeviceHandler
	cartHandler    *handler.CartHandler
	paymentHandler *handler.PaymentHandler
	orderHandler   *handler.OrderHandler
	productHandler *handler.ProductHandler
	reviewHandler  *handler.ReviewHandler
	contentHandler *handler.ContentHandler
	mediaHandler   *handler.MediaHandler
	adminHandler   *handler.AdminHandler
	feedHandler    *handler.FeedHandler
	healthHandler  *handler.HealthHandler
	testHandler    *handler.TestHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *deliverymiddleware.RateLimitMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		profileHandler: params.ProfileHandler,
		deviceHandler:  params.DeviceHandler,
		cartHandler:    params.CartHandler,
		paymentHandler: params.PaymentHandler,
		orderHandler:   params.OrderHandler,
		productHandler: params.ProductHandler,
		reviewHandler:  params.ReviewHandler,
		contentHandler: params.ContentHandler,
		mediaHandler:   params.MediaHandler,
		adminHandler:   params.AdminHandler,
		feedHandler:    params.FeedHandler,
		healthHandler:  params.HealthHandler,
		testHandler:    params.TestHandler,
		authMiddleware: params.AuthMiddleware,
		rateLimiter:    params.RateLimiter,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.Health)

	// Stored media, for the file:// and mem:// buckets used in development
	e.GET("/media/*", r.mediaHandler.Serve)

	// Auth routes, rate limited per client IP
	authGroup := e.Group("/auth", r.rateLimiter.Limit)
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.POST("/verify-email", r.authHandler.VerifyEmail)
		authGroup.POST("/forgot-password", r.authHandler.ForgotPassword)
		authGroup.POST("/reset-password", r.authHandler.ResetPassword)
	}
	e.PUT("/auth/profile", r.profileHandler.UpdateProfile, r.authMiddleware.Authenticate)

	// Catalog and merchandising content
	productsGroup := e.Group("/products")
	{
		productsGroup.GET("", r.productHandler.ListProducts)
		productsGroup.GET("/categories", r.productHandler.Categories)
		productsGroup.GET("/sale-banners", r.contentHandler.ListLiveBanners)
		productsGroup.GET("/:id", r.productHandler.GetProduct)
		productsGroup.GET("/:id/reviews", r.reviewHandler.ListProductReviews)
	}
	e.GET("/gallery-images", r.contentHandler.ListGalleryImages)
	e.GET("/hero-images", r.contentHandler.ListHeroImages)

	// User routes that require authentication
	userGroup := e.Group("/user", r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.profileHandler.GetProfile)
		userGroup.PUT("/profile", r.profileHandler.UpdateProfile)

		devicesGroup := userGroup.Group("/devices")
		devicesGroup.POST("", r.deviceHandler.RegisterDevice)
		devicesGroup.GET("", r.deviceHandler.GetUserDevices)
		devicesGroup.PUT("/:id/token", r.deviceHandler.UpdateFCMToken)
		devicesGroup.DELETE("/:id", r.deviceHandler.DeactivateDevice)
	}

	cartGroup := e.Group("/cart", r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PUT("/items/:id", r.cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:id", r.cartHandler.RemoveItem)
		cartGroup.DELETE("", r.cartHandler.ClearCart)

		// Paths used by the web client
		cartGroup.POST("/add", r.cartHandler.AddItem)
		cartGroup.PUT("/update", r.cartHandler.UpdateItem)
		cartGroup.DELETE("/remove", r.cartHandler.RemoveItem)
		cartGroup.DELETE("/clear", r.cartHandler.ClearCart)
	}

	paymentGroup := e.Group("/payment", r.authMiddleware.Authenticate)
	{
		paymentGroup.POST("/create-order", r.paymentHandler.CreateOrder)
		paymentGroup.POST("/verify-payment", r.paymentHandler.VerifyPayment)
		paymentGroup.GET("/orders", r.orderHandler.ListMyOrders)
		paymentGroup.GET("/orders/:id", r.orderHandler.GetOrder)
	}

	ordersGroup := e.Group("/orders", r.authMiddleware.Authenticate)
	{
		ordersGroup.GET("", r.orderHandler.ListMyOrders)
		ordersGroup.GET("/:id", r.orderHandler.GetOrder)
		ordersGroup.GET("/:id/receipt-qr", r.orderHandler.ReceiptQR)
	}

	reviewsGroup := e.Group("/reviews", r.authMiddleware.Authenticate)
	{
		reviewsGroup.POST("", r.reviewHandler.SubmitReview)
		reviewsGroup.GET("/admin/all", r.reviewHandler.ListAllReviews, r.authMiddleware.RequireRole(entity.RoleAdmin))
		reviewsGroup.DELETE("/:id", r.reviewHandler.DeleteReview, r.authMiddleware.RequireRole(entity.RoleAdmin))
	}

	// Browsers cannot set headers on a websocket upgrade, so the feed takes ?token=
	e.GET("/admin/orders/feed", r.feedHandler.Stream,
		r.authMiddleware.AuthenticateQuery,
		r.authMiddleware.RequireRole(entity.RoleAdmin),
	)

	// Admin routes that require authentication and the "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/stats", r.adminHandler.GetStats)
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.DELETE("/users/:id", r.adminHandler.DeleteUser)

		adminOrders := adminGroup.Group("/orders")
		adminOrders.GET("", r.orderHandler.ListOrders)
		adminOrders.GET("/export", r.orderHandler.ExportOrders)
		adminOrders.POST("/lookup", r.orderHandler.LookupByReceipt)
		adminOrders.GET("/:id", r.orderHandler.GetOrder)
		adminOrders.PATCH("/:id", r.orderHandler.UpdateOrderStatus)

		adminProducts := adminGroup.Group("/products")
		adminProducts.GET("", r.productHandler.AdminListProducts)
		adminProducts.POST("", r.productHandler.CreateProduct)
		adminProducts.GET("/export", r.productHandler.ExportProducts)
		adminProducts.PUT("/:id", r.productHandler.UpdateProduct)
		adminProducts.DELETE("/:id", r.productHandler.DeleteProduct)
		adminProducts.PATCH("/:id/featured", r.productHandler.SetFeatured)
		adminProducts.PATCH("/:id/new", r.productHandler.SetNew)
		adminProducts.PATCH("/:id/sale", r.productHandler.SetSale)

		adminBanners := adminGroup.Group("/sale-banners")
		adminBanners.GET("", r.contentHandler.ListBanners)
		adminBanners.POST("", r.contentHandler.CreateBanner)
		adminBanners.PUT("/:id", r.contentHandler.UpdateBanner)
		adminBanners.PATCH("/:id/active", r.contentHandler.SetBannerActive)
		adminBanners.DELETE("/:id", r.contentHandler.DeleteBanner)

		adminGallery := adminGroup.Group("/gallery-images")
		adminGallery.GET("", r.contentHandler.AdminListGalleryImages)
		adminGallery.POST("", r.contentHandler.CreateGalleryImage)
		adminGallery.PUT("/:id", r.contentHandler.UpdateGalleryImage)
		adminGallery.DELETE("/:id", r.contentHandler.DeleteGalleryImage)

		adminGroup.GET("/hero-images", r.contentHandler.AdminListHeroImages)
		adminGroup.PUT("/hero-images", r.contentHandler.ReplaceHeroImages)

		adminGroup.POST("/uploads/:kind", r.mediaHandler.Upload)
		adminGroup.POST("/upload/product-image", r.mediaHandler.UploadKind("product"))
		adminGroup.POST("/upload/banner-image", r.mediaHandler.UploadKind("banner"))
		adminGroup.POST("/upload/gallery-image", r.mediaHandler.UploadKind("gallery"))
		adminGroup.POST("/upload/hero-image", r.mediaHandler.UploadKind("hero"))
	}
}

func (r *router) RegisterTestRoutes(e *echo.Echo) {
	// Test routes - only enabled when configured
	if r.config.TestRoutes != nil && r.config.TestRoutes.Enabled {
		testGroup := e.Group("/test")
		testGroup.GET("/public", r.testHandler.TestPublicEndpoint)

		testGroup.Use(r.authMiddleware.Authenticate)
		{
			testGroup.GET("/auth", r.testHandler.TestAuthMiddleware)
			testGroup.POST("/feed-event", r.testHandler.TestFeedEvent, r.authMiddleware.RequireRole(entity.RoleAdmin))
		}
	}
}
