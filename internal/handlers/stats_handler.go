package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pixelbay/gallery-gateway/internal/config"
	"github.com/pixelbay/gallery-gateway/internal/models"
	"github.com/pixelbay/gallery-gateway/internal/services"
	"github.com/pixelbay/gallery-gateway/internal/utils"
)

// StatsHandler reports bucket usage via the store's admin API.
type StatsHandler struct {
	factory services.StoreFactory
	creds   services.Credentials
}

func NewStatsHandler(factory services.StoreFactory, cfg *config.Config) *StatsHandler {
	return &StatsHandler{
		factory: factory,
		creds: services.Credentials{
			Endpoint:  cfg.StorageEndpoint,
			Region:    cfg.StorageRegion,
			AccessKey: cfg.StorageAccessKey,
			SecretKey: cfg.StorageSecretKey,
			UseSSL:    cfg.StorageUseSSL,
		},
	}
}

// GetStorageStats returns total usage across the store.
func (h *StatsHandler) GetStorageStats(c echo.Context) error {
	admin, err := h.factory.NewAdminStore(h.creds)
	if err != nil {
		serr := services.ClassifyStoreError(err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to fetch storage stats", Message: serr.Message, Name: serr.Code,
		})
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	usage, err := admin.DataUsageInfo(ctx)
	if err != nil {
		serr := services.ClassifyStoreError(err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to fetch storage stats", Message: serr.Message, Name: serr.Code,
		})
	}

	return c.JSON(http.StatusOK, models.StorageStatsResponse{
		UsedBytes:    usage.ObjectsTotalSize,
		UsedDisplay:  utils.FormatBytes(usage.ObjectsTotalSize),
		ObjectCount:  usage.ObjectsTotalCount,
		BucketsCount: usage.BucketsCount,
	})
}
