package model

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type downloader interface {
	Download(ctx context.Context, w io.WriterAt, input *s3.GetObjectInput, options ...func(*manager.Downloader)) (int64, error)
}

// S3Source downloads the artifact from an S3 object.
type S3Source struct {
	bucket string
	key    string
	dl     downloader
}

// NewS3Source resolves AWS credentials from the default chain. An empty
// region leaves the SDK's own region resolution in place.
func NewS3Source(ctx context.Context, bucket, key, region string) (*S3Source, error) {
	if bucket == "" || key == "" {
		return nil, errors.New("s3 model source needs a bucket and a key")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newS3Source(bucket, key, manager.NewDownloader(s3.NewFromConfig(cfg))), nil
}

func newS3Source(bucket, key string, dl downloader) *S3Source {
	return &S3Source{bucket: bucket, key: key, dl: dl}
}

// Fetch implements Source.
func (s *S3Source) Fetch(ctx context.Context) ([]byte, error) {
	buf := manager.NewWriteAtBuffer(nil)
	_, err := s.dl.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		var noBucket *types.NoSuchBucket
		var notFound *types.NotFound
		if errors.As(err, &noKey) || errors.As(err, &noBucket) || errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %s", ErrMissingModel, s.Name())
		}
		return nil, fmt.Errorf("download model artifact %s: %w", s.Name(), err)
	}
	return buf.Bytes(), nil
}

func (s *S3Source) Name() string { return "s3://" + s.bucket + "/" + s.key }
func (s *S3Source) Kind() string { return "s3" }
