package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/glowdesk/salon-platform/internal/config"
	dbpkg "github.com/glowdesk/salon-platform/internal/db"
	"github.com/glowdesk/salon-platform/internal/logging"
	"github.com/glowdesk/salon-platform/internal/middleware"
	"github.com/glowdesk/salon-platform/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logging.New(cfg.Env)
	defer log.Sync()

	db := dbpkg.NewDB(cfg, log)
	rdb := dbpkg.NewRedis(cfg, log)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, log)

	log.Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
