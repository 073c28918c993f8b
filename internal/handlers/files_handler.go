package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/minio/minio-go/v7"
	"github.com/pixelbay/gallery-gateway/internal/config"
	"github.com/pixelbay/gallery-gateway/internal/models"
	"github.com/pixelbay/gallery-gateway/internal/services"
	"github.com/pixelbay/gallery-gateway/internal/utils"
)

// UploadPrefix is the key namespace all gallery uploads live under.
const UploadPrefix = "uploads/"

// FilesHandler serves the object-storage gateway API: list, upload,
// proxy-fetch and delete against a single configured bucket.
type FilesHandler struct {
	factory services.StoreFactory
	cfg     *config.Config
	creds   services.Credentials
}

func NewFilesHandler(factory services.StoreFactory, cfg *config.Config) *FilesHandler {
	return &FilesHandler{
		factory: factory,
		cfg:     cfg,
		creds: services.Credentials{
			Endpoint:  cfg.StorageEndpoint,
			Region:    cfg.StorageRegion,
			AccessKey: cfg.StorageAccessKey,
			SecretKey: cfg.StorageSecretKey,
			UseSSL:    cfg.StorageUseSSL,
		},
	}
}

// storeContext bounds one store round-trip.
func storeContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), config.StoreTimeout)
}

// ListFiles returns every object under the uploads/ prefix, each with a
// proxy URL so the browser never talks to the bucket directly.
func (h *FilesHandler) ListFiles(c echo.Context) error {
	store, err := h.factory.NewObjectStore(h.creds)
	if err != nil {
		serr := services.ClassifyStoreError(err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to list files", Message: serr.Message, Name: serr.Code,
		})
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	objects, err := store.ListObjects(ctx, h.cfg.StorageBucket, minio.ListObjectsOptions{
		Prefix:    UploadPrefix,
		Recursive: true,
	})
	if err != nil {
		serr := services.ClassifyStoreError(err)
		log.Printf("list files failed: %v", serr)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to list files", Message: serr.Message, Name: serr.Code,
		})
	}

	files := make([]models.FileRecord, 0, len(objects))
	for _, obj := range objects {
		files = append(files, models.FileRecord{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
			URL:          "/api/proxy/" + h.cfg.StorageBucket + "/" + obj.Key,
		})
	}

	return c.JSON(http.StatusOK, models.ListFilesResponse{Files: files})
}

// UploadFile stores the multipart "file" field under a timestamped key.
func (h *FilesHandler) UploadFile(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "No file provided"})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Upload failed", Message: err.Error(),
		})
	}
	defer func() { _ = src.Close() }()

	fileKey := fmt.Sprintf("%s%d-%s", UploadPrefix, time.Now().UnixMilli(), file.Filename)
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	store, err := h.factory.NewObjectStore(h.creds)
	if err != nil {
		serr := services.ClassifyStoreError(err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Upload failed", Message: serr.Message, Name: serr.Code, Code: serr.Code,
		})
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	start := time.Now()
	_, err = store.PutObject(ctx, h.cfg.StorageBucket, fileKey, src, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		serr := services.ClassifyStoreError(err)
		log.Printf("upload of %s failed after %s: %v", file.Filename, time.Since(start), serr)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Upload failed", Message: serr.Message, Name: serr.Code, Code: serr.Code,
		})
	}

	log.Printf("uploaded %s (%s, %s) as %s in %s",
		file.Filename, utils.FormatFileSize(file.Size), contentType, fileKey, time.Since(start))

	return c.JSON(http.StatusOK, models.UploadResponse{
		Success: true,
		FileKey: fileKey,
		URL:     h.cfg.AccessURL(fileKey),
	})
}

// ProxyFile streams object bytes back to the browser with the stored content
// type. Uploaded objects never change, hence the year-long cache directive.
func (h *FilesHandler) ProxyFile(c echo.Context) error {
	bucket := c.Param("bucket")
	key := objectKeyParam(c)

	store, err := h.factory.NewObjectStore(h.creds)
	if err != nil {
		serr := services.ClassifyStoreError(err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Server error", Message: serr.Message, Name: serr.Code,
		})
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	reader, info, err := store.GetObjectReader(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		serr := services.ClassifyStoreError(err)
		if serr.NotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "File not found", Message: serr.Message, Name: serr.Code,
			})
		}
		log.Printf("proxy fetch of %s/%s failed: %v", bucket, key, serr)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Server error", Message: serr.Message, Name: serr.Code,
		})
	}
	defer func() { _ = reader.Close() }()

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=31536000")

	return c.Stream(http.StatusOK, contentType, reader)
}

// DeleteFile removes an object. The store does not error on a missing key,
// so deletion is idempotent and no existence check is made first.
func (h *FilesHandler) DeleteFile(c echo.Context) error {
	fileKey := objectKeyParam(c)

	store, err := h.factory.NewObjectStore(h.creds)
	if err != nil {
		serr := services.ClassifyStoreError(err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Delete failed", Message: serr.Message, Name: serr.Code, Code: serr.Code,
		})
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	if err := store.RemoveObject(ctx, h.cfg.StorageBucket, fileKey, minio.RemoveObjectOptions{}); err != nil {
		serr := services.ClassifyStoreError(err)
		log.Printf("delete of %s failed: %v", fileKey, serr)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Delete failed", Message: serr.Message, Name: serr.Code, Code: serr.Code,
		})
	}

	return c.JSON(http.StatusOK, models.DeleteResponse{Success: true, FileKey: fileKey})
}

// objectKeyParam returns the wildcard path segment as an object key. Echo
// leaves the wildcard match percent-encoded, so nested keys with spaces or
// unicode names arrive escaped.
func objectKeyParam(c echo.Context) string {
	key := c.Param("*")
	if decoded, err := url.PathUnescape(key); err == nil {
		return decoded
	}
	return key
}
