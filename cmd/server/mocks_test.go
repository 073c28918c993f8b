package main

import (
	"context"
	"io"

	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
	"github.com/pixelbay/gallery-gateway/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockObjectStore implements services.ObjectStore for testing
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) ([]minio.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, opts)
	var objects []minio.ObjectInfo
	if v := args.Get(0); v != nil {
		objects = v.([]minio.ObjectInfo)
	}
	return objects, args.Error(1)
}

func (m *MockObjectStore) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *MockObjectStore) GetObjectReader(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, minio.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	var reader io.ReadCloser
	if v := args.Get(0); v != nil {
		reader = v.(io.ReadCloser)
	}
	return reader, args.Get(1).(minio.ObjectInfo), args.Error(2)
}

func (m *MockObjectStore) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Error(0)
}

func (m *MockObjectStore) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Get(0).(minio.ObjectInfo), args.Error(1)
}

// MockAdminStore implements services.AdminStore for testing
type MockAdminStore struct {
	mock.Mock
}

func (m *MockAdminStore) DataUsageInfo(ctx context.Context) (madmin.DataUsageInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(madmin.DataUsageInfo), args.Error(1)
}

// MockStoreFactory implements services.StoreFactory for testing
type MockStoreFactory struct {
	mock.Mock
}

func (m *MockStoreFactory) NewObjectStore(creds services.Credentials) (services.ObjectStore, error) {
	args := m.Called(creds)
	var store services.ObjectStore
	if v := args.Get(0); v != nil {
		store = v.(services.ObjectStore)
	}
	return store, args.Error(1)
}

func (m *MockStoreFactory) NewAdminStore(creds services.Credentials) (services.AdminStore, error) {
	args := m.Called(creds)
	var store services.AdminStore
	if v := args.Get(0); v != nil {
		store = v.(services.AdminStore)
	}
	return store, args.Error(1)
}
