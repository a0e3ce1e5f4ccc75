// Package blobstore abstracts the bucket storage the site keeps uploaded
// files in (project images, profile images, CV files, popup images). Objects
// are write-once and publicly readable by URL.
package blobstore

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Store is the capability the content layer uploads through.
type Store interface {
	// Upload writes the object under bucket/key. The object must be publicly
	// fetchable through PublicURL afterwards.
	Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) error

	// PublicURL resolves the public URL of bucket/key. It performs no I/O and
	// does not check that the object exists.
	PublicURL(bucket, key string) string
}

// ObjectKey builds the storage key for an uploaded file. The millisecond
// timestamp prefix is the sole collision-avoidance mechanism: two uploads of
// the same filename within the same tick can still collide. Best effort, good
// enough for a single admin.
func ObjectKey(filename string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filename)
}
