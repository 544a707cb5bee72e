// Package filestore issues presigned URLs for CV documents. Bytes never
// pass through the server: clients PUT and GET directly against the
// object store.
package filestore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Store interface {
	PresignUpload(ctx context.Context, key string) (string, error)
	PresignDownload(ctx context.Context, key string) (string, error)
}

// NewCVKey returns a fresh object key for a CV owned by userID.
func NewCVKey(userID string, now time.Time) string {
	return fmt.Sprintf("cvs/%d/%d/%d/%s/%v", now.Year(), now.Month(), now.Day(), userID, uuid.New())
}
