package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/minedash/minedash/internal/server/http/handlers"
	"github.com/minedash/minedash/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.DashboardFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	userHandler := handlers.NewUserHandler(facade)
	miningHandler := handlers.NewMiningHandler(facade)
	conversionHandler := handlers.NewConversionHandler(facade)
	withdrawalHandler := handlers.NewWithdrawalHandler(facade)
	leaderboardHandler := handlers.NewLeaderboardHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")

	// Read-only tables and rankings need no identity.
	api.GET("/actions", miningHandler.Actions)
	api.GET("/packs", conversionHandler.Packs)
	api.GET("/leaderboard", leaderboardHandler.List)

	user := api.Group("", middleware.IdentityRequired())
	user.POST("/user", userHandler.Ensure)
	user.GET("/user", userHandler.Me)
	user.PATCH("/user", userHandler.Update)
	user.GET("/user/cooldowns", miningHandler.Cooldowns)
	user.POST("/user/daily-claim", miningHandler.ClaimDaily)
	user.POST("/user/convert", conversionHandler.Convert)
	user.POST("/user/withdrawals", withdrawalHandler.Create)
	user.GET("/user/withdrawals", withdrawalHandler.List)
	user.POST("/actions/:id/complete", miningHandler.Complete)
	user.GET("/actions/:id/available", miningHandler.Available)
	user.POST("/packs/:id/claim", conversionHandler.ClaimPack)

	admin := api.Group("/admin", middleware.IdentityRequired())
	admin.POST("/login", adminHandler.Login)

	adminOnly := admin.Group("", middleware.AdminRequired(facade))
	adminOnly.GET("/stats", adminHandler.Stats)
	adminOnly.GET("/users", adminHandler.Users)
	adminOnly.DELETE("/users/:id", adminHandler.DeleteUser)
	adminOnly.POST("/users/:id/points", adminHandler.AddPoints)
	adminOnly.PUT("/users/:id/balance", adminHandler.SetBalance)
	adminOnly.GET("/withdrawals", adminHandler.Withdrawals)
	adminOnly.POST("/withdrawals/:id", adminHandler.ResolveWithdrawal)

	return engine
}
