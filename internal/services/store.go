package services

import (
	"context"
	"io"

	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Credentials identifies one S3-compatible endpoint. Built once from the
// gateway configuration at startup; never read from request state.
type Credentials struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// ObjectStore is the subset of S3 operations the gateway performs.
type ObjectStore interface {
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) ([]minio.ObjectInfo, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObjectReader(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// AdminStore is the subset of the admin API the stats endpoint uses.
type AdminStore interface {
	DataUsageInfo(ctx context.Context) (madmin.DataUsageInfo, error)
}

// StoreFactory creates store clients for a set of credentials.
type StoreFactory interface {
	NewObjectStore(creds Credentials) (ObjectStore, error)
	NewAdminStore(creds Credentials) (AdminStore, error)
}

// WrappedStoreClient wraps minio.Client to implement ObjectStore.
type WrappedStoreClient struct {
	client *minio.Client
}

func (c *WrappedStoreClient) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) ([]minio.ObjectInfo, error) {
	// Drain the listing channel so callers get either the full listing
	// or an error, never a partial result.
	var objects []minio.ObjectInfo
	for obj := range c.client.ListObjects(ctx, bucketName, opts) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

func (c *WrappedStoreClient) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return c.client.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

// GetObjectReader opens the object and stats it up front, so a missing key
// surfaces as an error here rather than on first read.
func (c *WrappedStoreClient) GetObjectReader(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, minio.ObjectInfo, error) {
	obj, err := c.client.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, minio.ObjectInfo{}, err
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, minio.ObjectInfo{}, err
	}
	return obj, info, nil
}

func (c *WrappedStoreClient) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return c.client.RemoveObject(ctx, bucketName, objectName, opts)
}

func (c *WrappedStoreClient) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return c.client.StatObject(ctx, bucketName, objectName, opts)
}

// RealStoreFactory is the production implementation.
type RealStoreFactory struct{}

func (f *RealStoreFactory) NewObjectStore(creds Credentials) (ObjectStore, error) {
	client, err := minio.New(creds.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(creds.AccessKey, creds.SecretKey, ""),
		Region: creds.Region,
		Secure: creds.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &WrappedStoreClient{client: client}, nil
}

func (f *RealStoreFactory) NewAdminStore(creds Credentials) (AdminStore, error) {
	return madmin.NewWithOptions(creds.Endpoint, &madmin.Options{
		Creds:  credentials.NewStaticV4(creds.AccessKey, creds.SecretKey, ""),
		Secure: creds.UseSSL,
	})
}
