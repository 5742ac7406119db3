package storage_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"mango-sync/core/storage"
	"mango-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type report struct {
	Created int `json:"created"`
}

func TestArchiver_Archive(t *testing.T) {
	cfg := storage.Config{Bucket: "mango-sync", Prefix: "reports"}

	t.Run("Existing bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "mango-sync").Return(true, nil)

		var body []byte
		client.On("PutObject", mock.Anything, "mango-sync", "reports/run-1.json", mock.Anything, mock.AnythingOfType("int64"), mock.Anything).
			Run(func(args mock.Arguments) {
				body, _ = io.ReadAll(args.Get(3).(io.Reader))
			}).
			Return(minio.UploadInfo{}, nil)

		key, err := storage.NewArchiver(client, cfg).Archive(context.Background(), "run-1", report{Created: 2})
		require.NoError(t, err)
		assert.Equal(t, "reports/run-1.json", key)
		assert.JSONEq(t, `{"created":2}`, string(body))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates missing bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "mango-sync").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "mango-sync", mock.Anything).Return(nil)
		client.On("PutObject", mock.Anything, "mango-sync", "reports/run-2.json", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)

		_, err := storage.NewArchiver(client, cfg).Archive(context.Background(), "run-2", report{})
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("Upload failure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "mango-sync").Return(true, nil)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("access denied"))

		key, err := storage.NewArchiver(client, cfg).Archive(context.Background(), "run-3", report{})
		assert.ErrorContains(t, err, "access denied")
		assert.Empty(t, key)
	})

	t.Run("Bucket check failure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "mango-sync").Return(false, errors.New("dial tcp: refused"))

		_, err := storage.NewArchiver(client, cfg).Archive(context.Background(), "run-4", report{})
		assert.ErrorContains(t, err, "failed to check bucket")
	})
}
