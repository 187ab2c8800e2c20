package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"airquality-service/internal/config"
)

// NewMinioClient initializes a MinIO client and verifies the artifact bucket
// exists. Unlike a writable store, a missing bucket is an error here: the
// artifact has to be published before the service can start.
func NewMinioClient(cfg *config.Config) (*minio.Client, error) {
	minioClient, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioSSL,
	})
	if err != nil {
		return nil, err
	}
	exists, err := minioClient.BucketExists(context.Background(), cfg.MinioBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.Errorf("artifact bucket %q does not exist", cfg.MinioBucket)
	}
	return minioClient, nil
}

// FetchArtifact downloads the model artifact object into localPath,
// creating parent directories as needed.
func FetchArtifact(ctx context.Context, client *minio.Client, bucket, object, localPath string) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return errors.Wrap(err, "could not create model directory")
	}
	if err := client.FGetObject(ctx, bucket, object, localPath, minio.GetObjectOptions{}); err != nil {
		return errors.Wrapf(err, "could not fetch artifact %s/%s", bucket, object)
	}
	return nil
}
