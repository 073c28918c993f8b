package uploader

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/pixelbay/gallery-gateway/internal/services"
)

const (
	rampStep     = 5
	rampCeiling  = 95
	rampInterval = 200 * time.Millisecond
)

// DirectClient uploads straight to the object store, bypassing the gateway.
// This trades the gateway's error normalization for one less hop, and it
// requires store credentials wherever it runs: it must only be constructed in
// server-side code. Handing these credentials to a browser-style deployment
// leaks them to anyone who can read the page.
//
// The store API exposes no transmission progress, so Upload reports a
// synthesized ramp: fixed steps up to a ceiling while the put is in flight,
// then a snap to 100 once it completes.
type DirectClient struct {
	store    services.ObjectStore
	bucket   string
	interval time.Duration
	now      func() time.Time
}

func NewDirectClient(creds services.Credentials, bucket string) (*DirectClient, error) {
	store, err := (&services.RealStoreFactory{}).NewObjectStore(creds)
	if err != nil {
		return nil, fmt.Errorf("create store client: %w", err)
	}
	return &DirectClient{
		store:    store,
		bucket:   bucket,
		interval: rampInterval,
		now:      time.Now,
	}, nil
}

// Upload puts one object under a timestamped uploads/ key and returns the key.
func (d *DirectClient) Upload(ctx context.Context, fileName string, content io.Reader, size int64, contentType string, onProgress ProgressFunc) (string, error) {
	fileKey := fmt.Sprintf("uploads/%d-%s", d.now().UnixMilli(), fileName)

	stop := make(chan struct{})
	done := make(chan struct{})
	if onProgress != nil {
		go func() {
			defer close(done)
			ticker := time.NewTicker(d.interval)
			defer ticker.Stop()
			pct := 0
			for {
				select {
				case <-stop:
					return
				case <-ticker.C:
					if next := nextRampStep(pct); next > pct {
						pct = next
						onProgress(pct)
					}
				}
			}
		}()
	} else {
		close(done)
	}

	_, err := d.store.PutObject(ctx, d.bucket, fileKey, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	close(stop)
	<-done

	if err != nil {
		return "", fmt.Errorf("upload %s: %w", fileName, services.ClassifyStoreError(err))
	}

	if onProgress != nil {
		onProgress(100)
	}
	return fileKey, nil
}

// nextRampStep advances the synthetic progress ramp. It climbs in fixed steps
// and holds at the ceiling; only real completion reports 100.
func nextRampStep(current int) int {
	next := current + rampStep
	if next > rampCeiling {
		return rampCeiling
	}
	return next
}
