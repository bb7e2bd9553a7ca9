package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/server/http/handlers"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)

	api := engine.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	api.GET("/products", catalogHandler.List)
	api.GET("/products/:id", catalogHandler.Get)

	api.POST("/checkout", checkoutHandler.Checkout)
	api.GET("/orders", orderHandler.ListByCustomer)

	staff := api.Group("/staff")
	staff.Use(middleware.AuthRequired(facade))
	staff.GET("/orders", orderHandler.List)
	staff.GET("/orders/:id", orderHandler.Get)
	staff.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	staff.POST("/products", catalogHandler.Create)
	staff.PUT("/products/:id", catalogHandler.Update)
	staff.PATCH("/products/:id/stock", catalogHandler.Restock)

	return engine
}
