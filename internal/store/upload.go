package store

import (
	"context"
	"os"

	"github.com/pmorgner/imagine/internal/log"
	"github.com/samber/do"
)

type UploadParams struct {
	Name        string
	Data        []byte
	ContentType string
	Metadata    map[string]string
}

type Uploader interface {
	Upload(context.Context, UploadParams) error
}

// NewUploader returns the S3 uploader when a bucket is configured, otherwise
// a local file uploader so the Lambda handler can be exercised end to end
// without AWS resources.
func NewUploader(i *do.Injector) (Uploader, error) {
	if bucket := do.MustInvokeNamed[string](i, "bucket"); bucket != "" {
		return NewS3Uploader(i)
	}
	return &FileUploader{}, nil
}

type FileUploader struct{}

func (*FileUploader) Upload(ctx context.Context, params UploadParams) error {
	log := log.FromContextOrDiscard(ctx).WithGroup("file")
	log.Info("writing", "file", params.Name)
	return os.WriteFile(params.Name, params.Data, 0o600)
}
