package checks

import (
	"context"
	"fmt"

	"shipment-gateway/core/storage"

	"github.com/minio/minio-go/v7"
)

// CheckBucket verifies the snapshot bucket exists and can be listed under
// prefix.
func CheckBucket(ctx context.Context, client storage.Client, bucket, prefix string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", bucket)
	}

	opts := minio.ListObjectsOptions{Prefix: prefix, MaxKeys: 1}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return fmt.Errorf("failed to list bucket %s: %w", bucket, obj.Err)
		}
		break
	}
	return nil
}
