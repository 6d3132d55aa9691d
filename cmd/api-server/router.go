package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slayervault/internal/admin"
	"slayervault/internal/catalog"
	"slayervault/internal/overrides"
	"slayervault/internal/particles"
	synchub "slayervault/internal/sync"
	"slayervault/internal/upload"
	"slayervault/pkg/logging"
)

type deps struct {
	Catalog   *catalog.Repo
	Overrides overrides.Store
	Auth      admin.Authorizer
	Blobs     upload.BlobStore
	Hub       *synchub.Hub
	Log       *zap.Logger

	// UploadDir is served at UploadBaseURL when uploads stay on local disk.
	UploadDir     string
	UploadBaseURL string

	// Ping reports store health for /ready; nil means always ready.
	Ping func(ctx context.Context) error
}

func newRouter(d deps) *gin.Engine {
	router := gin.New()
	router.Use(logging.GinLogger(d.Log), gin.Recovery())
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/ws", synchub.WSHandler(d.Hub, d.Log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "characters": len(d.Catalog.Records)})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := d.Hub.Stats()
		if d.Ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := d.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":      "not_ready",
					"store_error": err.Error(),
					"tcp_clients": stats.TCPClients,
					"ws_clients":  stats.WSClients,
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	// Catalog (public)
	catalog.NewHandler(d.Catalog).RegisterRoutes(router.Group(""))
	particles.NewHandler().RegisterRoutes(router.Group("/particles"))

	// Overrides: public read, admin write
	overrides.NewHandler(d.Overrides, d.Auth, d.Hub, d.Log).RegisterRoutes(router.Group("/overrides"))

	// Admin
	admin.NewHandler(d.Auth, d.Log).RegisterRoutes(router.Group("/admin"))
	if d.Blobs != nil {
		upload.NewHandler(d.Blobs, d.Auth, d.Log).RegisterRoutes(router.Group("/upload"))
	}
	if d.UploadDir != "" && d.UploadBaseURL != "" {
		router.Static(d.UploadBaseURL, d.UploadDir)
	}

	return router
}
