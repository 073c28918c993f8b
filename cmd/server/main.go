package main

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pixelbay/gallery-gateway/internal/config"
	"github.com/pixelbay/gallery-gateway/internal/handlers"
	customMiddleware "github.com/pixelbay/gallery-gateway/internal/middleware"
	"github.com/pixelbay/gallery-gateway/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	log.Printf("storage endpoint: %s", cfg.StorageEndpoint)
	log.Printf("storage bucket: %s", cfg.StorageBucket)
	log.Printf("storage region: %s", cfg.StorageRegion)

	e := newServer(cfg, &services.RealStoreFactory{})

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

func newServer(cfg *config.Config, factory services.StoreFactory) *echo.Echo {
	e := echo.New()

	filesHandler := handlers.NewFilesHandler(factory, cfg)
	statsHandler := handlers.NewStatsHandler(factory, cfg)

	// Middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Printf("REQUEST: uri: %v, status: %v\n", v.URI, v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(customMiddleware.CORS())
	// Uploads are buffered before the store write; cap the body size here.
	e.Use(middleware.BodyLimit("100M"))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "healthy")
	})

	// Storage gateway API
	e.GET("/api/files", filesHandler.ListFiles)
	e.POST("/api/upload", filesHandler.UploadFile)
	e.DELETE("/api/files/*", filesHandler.DeleteFile)
	e.GET("/api/proxy/:bucket/*", filesHandler.ProxyFile)
	e.GET("/api/storage/stats", statsHandler.GetStorageStats)

	// SPA assets with an index fallback for client-side routes. HTML5 mode
	// serves index.html only when no file matches, so assets win.
	if cfg.StaticDir != "" {
		if _, err := os.Stat(cfg.StaticDir); err == nil {
			e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
				Root:  cfg.StaticDir,
				HTML5: true,
			}))
		}
	}

	return e
}
