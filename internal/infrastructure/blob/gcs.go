package blob

import (
	"context"
	"io"

	"cloud.google.com/go/storage"

	"go-blog-api/pkg/helpers"
)

// GCSSink writes objects into a Google Cloud Storage bucket with public read
// access and returns the public URL.
type GCSSink struct {
	client *storage.Client
	bucket string
}

func NewGCSSink(client *storage.Client, bucket string) *GCSSink {
	return &GCSSink{client: client, bucket: bucket}
}

func (s *GCSSink) Store(ctx context.Context, r io.Reader, originalName, contentType string) (string, error) {
	return helpers.UploadObject(ctx, s.client, s.bucket, ObjectKey(originalName), contentType, r)
}

var _ Sink = (*GCSSink)(nil)
