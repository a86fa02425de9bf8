// Package storage resolves item image keys held in an S3-compatible bucket.
package storage

import (
	"context"
	"time"
)

// ImageSigner turns an object key into a time-limited download URL.
type ImageSigner interface {
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
