package blob

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Options configures the S3 sink. Endpoint is optional and set for MinIO
// or other S3-compatible stores. PublicHost is the host objects are publicly
// reachable under; references take the form https://{bucket}.{host}/{key}.
type S3Options struct {
	Bucket     string
	Region     string
	Endpoint   string
	AccessKey  string
	SecretKey  string
	PublicHost string
}

type S3Sink struct {
	client *s3.Client
	opts   S3Options
}

func NewS3Sink(ctx context.Context, opts S3Options) (*S3Sink, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})

	return &S3Sink{client: client, opts: opts}, nil
}

// Store puts the object with public-read visibility. Failures surface to the
// caller; there is no retry and no fallback to another sink.
func (s *S3Sink) Store(ctx context.Context, r io.Reader, originalName, contentType string) (string, error) {
	key := ObjectKey(originalName)

	// PutObject wants a seekable body; covers are small images
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(b),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", err
	}

	return "https://" + s.opts.Bucket + "." + s.opts.PublicHost + "/" + key, nil
}

var _ Sink = (*S3Sink)(nil)
