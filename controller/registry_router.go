package controller

import (
	"token-registry-service/conf"
	"token-registry-service/controller/handler"
	"token-registry-service/controller/respond"
	"token-registry-service/docs"
	"token-registry-service/service/registry_service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRegistryRouter setup registry service router
func SetupRegistryRouter(registry *registry_service.RegistryService) *gin.Engine {
	// Set Swagger host from config
	if conf.Cfg.Server.SwaggerBaseUrl != "" {
		docs.SwaggerInfo.Host = conf.Cfg.Server.SwaggerBaseUrl
	}

	// Create Gin engine
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "Accept", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * 3600, // 12 hours
	}))

	// Add timing middleware
	r.Use(respond.TimingMiddleware())

	// Create handlers
	tokenHandler := handler.NewTokenHandler(registry)
	eventHandler := handler.NewEventHandler(registry)

	// API v1 route group
	v1 := r.Group("/api/v1")
	{
		// Token routes
		tokens := v1.Group("/tokens")
		{
			// List tokens (cursor pagination, insertion order)
			tokens.GET("", tokenHandler.ListTokens)

			// Mint a token (must be before /:tokenId to avoid route conflict)
			tokens.POST("/mint", tokenHandler.Mint)

			// Transfer a token (must be before /:tokenId to avoid route conflict)
			tokens.POST("/transfer", tokenHandler.Transfer)

			// Approval routes
			tokens.POST("/:tokenId/approve", tokenHandler.Approve)
			tokens.POST("/:tokenId/revoke", tokenHandler.Revoke)
			tokens.POST("/:tokenId/revoke-all", tokenHandler.RevokeAll)
			tokens.GET("/:tokenId/approved", tokenHandler.IsApproved)

			// Burn a token
			tokens.POST("/:tokenId/burn", tokenHandler.Burn)

			// Get token view
			tokens.GET("/:tokenId", tokenHandler.GetToken)
		}

		// Owner routes
		owners := v1.Group("/owners")
		{
			owners.GET("/:accountId/tokens", tokenHandler.TokensForOwner)
			owners.GET("/:accountId/supply", tokenHandler.SupplyForOwner)
		}

		// Total supply route
		v1.GET("/supply", tokenHandler.TotalSupply)

		// Contract metadata route
		v1.GET("/metadata", tokenHandler.ContractMetadata)

		// Event log route
		v1.GET("/events", eventHandler.ListEvents)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "registry",
		})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.InstanceName("swagger")))

	return r
}
