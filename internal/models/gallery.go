// Package models contains the API types shared between handlers and clients.
package models

import "time"

// FileRecord describes one stored object as returned by GET /api/files.
type FileRecord struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	URL          string    `json:"url"`
}

// ListFilesResponse is the body of GET /api/files.
type ListFilesResponse struct {
	Files []FileRecord `json:"files"`
}

// UploadResponse is the body of a successful POST /api/upload.
type UploadResponse struct {
	Success bool   `json:"success"`
	FileKey string `json:"fileKey"`
	URL     string `json:"url"`
}

// DeleteResponse is the body of a successful DELETE /api/files/*.
type DeleteResponse struct {
	Success bool   `json:"success"`
	FileKey string `json:"fileKey"`
}

// StorageStatsResponse is the body of GET /api/storage/stats.
type StorageStatsResponse struct {
	UsedBytes    uint64 `json:"usedBytes"`
	UsedDisplay  string `json:"usedDisplay"`
	ObjectCount  uint64 `json:"objectCount"`
	BucketsCount uint64 `json:"bucketsCount"`
}

// ErrorResponse is the body of every failed API call. Name and Code carry the
// store's machine-readable error code when one is available; Message is the
// human-readable cause.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Name    string `json:"name,omitempty"`
	Code    string `json:"code,omitempty"`
}
