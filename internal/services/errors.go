package services

import (
	"context"
	"errors"

	"github.com/minio/minio-go/v7"
)

// StoreError carries the machine-readable code and human message of a failed
// store call, normalized from whatever the underlying client returned.
type StoreError struct {
	Code     string
	Message  string
	NotFound bool
}

func (e *StoreError) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

// ClassifyStoreError normalizes a store failure. A missing object is the only
// condition callers treat differently from a generic failure, so it is the
// only one flagged.
func ClassifyStoreError(err error) *StoreError {
	if err == nil {
		return nil
	}

	resp := minio.ToErrorResponse(err)
	if resp.Code != "" {
		return &StoreError{
			Code:     resp.Code,
			Message:  resp.Message,
			NotFound: resp.Code == "NoSuchKey",
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &StoreError{Code: "RequestTimeout", Message: err.Error()}
	}

	return &StoreError{Message: err.Error()}
}
