// Package upload pushes generated artifacts to S3-compatible object storage.
package upload

import (
	"context"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

const DefaultEndpoint = "s3.amazonaws.com"

// S3Uploader uploads local files under a fixed bucket path, granting
// public-read access so benchmark runners can fetch them anonymously.
type S3Uploader struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewS3Uploader builds an uploader for the given bucket and object key
// prefix. Credentials come from the usual AWS environment variables.
func NewS3Uploader(endpoint, bucket, prefix string) (*S3Uploader, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewEnvAWS(),
		Secure: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create client for %s", endpoint)
	}
	return &S3Uploader{client: client, bucket: bucket, prefix: prefix}, nil
}

// UploadPublic stores each file as <prefix><basename> with a public-read ACL.
// The first failure aborts the whole upload.
func (u *S3Uploader) UploadPublic(ctx context.Context, filenames []string) error {
	for _, filename := range filenames {
		objectKey := u.prefix + filepath.Base(filename)
		opts := minio.PutObjectOptions{
			UserMetadata: map[string]string{"x-amz-acl": "public-read"},
		}
		if _, err := u.client.FPutObject(ctx, u.bucket, objectKey, filename, opts); err != nil {
			return errors.Wrapf(err, "upload of %s to %s/%s failed", filename, u.bucket, objectKey)
		}
	}
	return nil
}
