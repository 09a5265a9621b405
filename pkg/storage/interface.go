package storage

import (
	"context"
	"time"
)

// Storage provides time-limited access URLs for objects in the media
// bucket. Search never writes objects; it only signs reads.
type Storage interface {
	// GetURL returns a presigned GET URL for the object, valid for the
	// given duration.
	GetURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
