package main

import (
	"github.com/blues/chainstats/internal/config"
	"github.com/blues/chainstats/internal/logger"
	"github.com/blues/chainstats/internal/repository"
	"github.com/blues/chainstats/internal/router"
	"github.com/blues/chainstats/internal/task"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Log); err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := repository.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.Setup(db, cfg)

	manager := task.Start(db, cfg)
	defer manager.Stop()

	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
