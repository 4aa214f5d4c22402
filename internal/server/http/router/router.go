package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/cyna-app/commerce/internal/config"
	"github.com/cyna-app/commerce/internal/server/http/handlers"
	"github.com/cyna-app/commerce/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CommerceFacade, health handlers.HealthChecker, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	invoiceHandler := handlers.NewInvoiceHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade, logger)
	webhookHandler := handlers.NewWebhookHandler(facade, cfg.PaymentWebhookSecret, logger)
	healthHandler := handlers.NewHealthHandler(health)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)
	api.POST("/webhooks/payment", webhookHandler.Handle)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	cart := api.Group("/cart")
	cart.Use(middleware.OptionalAuth(facade))
	cart.POST("/checkout", checkoutHandler.Checkout)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/orders", orderHandler.List)
	userAuth.GET("/orders/:id", orderHandler.Get)
	userAuth.GET("/orders/:id/invoice", invoiceHandler.Get)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade), middleware.AdminRequired())
	admin.GET("/orders", adminHandler.List)
	admin.GET("/orders/:id", adminHandler.Get)
	admin.PATCH("/orders/:id", adminHandler.UpdateStatus)
	admin.POST("/orders/:id/refund", adminHandler.Refund)
	admin.POST("/orders/:id/annotate", adminHandler.Annotate)

	return engine
}
