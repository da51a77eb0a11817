package router

import (
	"github.com/blues/chainstats/internal/auth"
	"github.com/blues/chainstats/internal/config"
	"github.com/blues/chainstats/internal/handler"
	"github.com/blues/chainstats/internal/logic"
	"github.com/blues/chainstats/internal/repository"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.New()

	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "chainstats",
		})
	})

	blockRepo := repository.NewBlockRepository(db)
	userRepo := repository.NewUserRepository(db)

	hasher := auth.NewBcryptHasher()
	authenticator := auth.NewJWTAuthenticator(cfg.Auth.JWTSecret, userRepo)

	blockHandler := handler.NewBlockHandler(logic.NewBlockLogic(blockRepo, cfg.API.PageSizeMax))
	userHandler := handler.NewUserHandler(logic.NewUserLogic(userRepo, hasher))

	v1 := r.Group("/api/v1")
	{
		// Block and reference data routes, all behind authentication
		authed := v1.Group("")
		authed.Use(auth.RequireAuth(authenticator))
		{
			authed.GET("/blocks", blockHandler.GetBlocks)
			authed.GET("/blocks/by-currency/:currency_name/:block_number", blockHandler.GetBlockByKey)
			authed.GET("/blocks/:block_id", blockHandler.GetBlockById)
			authed.GET("/providers", blockHandler.GetProviders)
			authed.GET("/currencies", blockHandler.GetCurrencies)

			// Admin account creation; the role check lives in the logic layer
			authed.POST("/accounts", userHandler.CreateAccount)
		}

		// Public registration
		v1.POST("/register", userHandler.Register)
	}

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
