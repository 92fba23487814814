package export

import (
	"bytes"
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/weave/internal/errors"
)

// ObjectPutter is the part of the S3 client used by S3Sink.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ ObjectPutter = (*s3.Client)(nil)

// NewS3Client creates an S3 client from the default AWS configuration chain.
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.New("W150").
			Wrap(err).
			WithSuggestion("Check AWS credentials and region configuration")
	}
	return s3.NewFromConfig(cfg), nil
}

// S3Sink writes documents to an S3 bucket.
//
// Example usage:
//
//	client, _ := export.NewS3Client(ctx, "eu-west-1")
//	sink := export.NewS3Sink(client, "snapshots", "weave/")
//	location, err := sink.Put(ctx, "counter.html", page)
type S3Sink struct {
	client ObjectPutter
	bucket string
	prefix string
	now    func() time.Time
}

// NewS3Sink creates an S3Sink. prefix is prepended to every key.
func NewS3Sink(client ObjectPutter, bucket, prefix string) *S3Sink {
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: prefix,
		now:    time.Now,
	}
}

// Put implements Sink.
func (s *S3Sink) Put(ctx context.Context, key string, body []byte) (string, error) {
	if key == "" {
		return "", errors.New("W151").WithDetail("The export key is empty.")
	}
	key = s.prefix + key

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(ContentType),
		Metadata: map[string]string{
			"rendered-at": s.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", errors.New("W150").
			Wrap(err).
			WithDetail("Uploading s3://" + s.bucket + "/" + key + " failed.")
	}
	return "s3://" + s.bucket + "/" + key, nil
}
