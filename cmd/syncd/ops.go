package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/adapter"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/config"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/schedule"
)

// newOpsServer builds the operational HTTP server: liveness, readiness and a
// status view over the maintenance runner.
func newOpsServer(cfg config.ServerConfig, db *gorm.DB, runner *schedule.Runner, clock adapter.Clock) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	startedAt := clock.Now()

	router.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/status", func(c *gin.Context) {
		status := gin.H{
			"service":    "syncd",
			"running":    runner.Running(),
			"started_at": startedAt,
			"uptime":     clock.Since(startedAt).String(),
		}
		if stats := runner.LastSyncStats(); stats != nil {
			status["last_sync"] = stats
		}
		c.JSON(http.StatusOK, status)
	})

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}
}
