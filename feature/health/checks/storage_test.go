package checks

import (
	"context"
	"errors"
	"testing"

	"shipment-gateway/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCheckBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Ok", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "snap").Return(true, nil)
		m.On("ListObjects", mock.Anything, "snap", mock.Anything).Return(nil)

		assert.NoError(t, CheckBucket(ctx, m, "snap", "snapshots/"))
	})

	t.Run("Missing", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "snap").Return(false, nil)

		assert.ErrorContains(t, CheckBucket(ctx, m, "snap", ""), "does not exist")
	})

	t.Run("ListError", func(t *testing.T) {
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: errors.New("access denied")}
		close(ch)

		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "snap").Return(true, nil)
		m.On("ListObjects", mock.Anything, "snap", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		assert.ErrorContains(t, CheckBucket(ctx, m, "snap", ""), "access denied")
	})
}
