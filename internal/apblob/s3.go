package apblob

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
	sconfig "github.com/rmorlok/connlifecycle/internal/schema/config"
)

type s3Client struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Client creates an S3 backed client. Keys are stored under the configured prefix.
func NewS3Client(ctx context.Context, cfg *sconfig.BlobStorageS3) (Client, error) {
	opts, err := cfg.GetAwsConfigLoadOptions(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get AWS config load options for blob storage")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config for blob storage")
	}

	return &s3Client{
		client: s3.NewFromConfig(awsCfg, cfg.GetS3Options()...),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

func (c *s3Client) key(key string) string {
	return c.prefix + key
}

func (c *s3Client) Put(ctx context.Context, input PutInput) error {
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(c.key(input.Key)),
		Body:        bytes.NewReader(input.Data),
		ContentType: input.ContentType,
	})
	if err != nil {
		return errors.Wrap(err, "failed to put blob to S3")
	}

	return nil
}

func (c *s3Client) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(c.key(key)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrBlobNotFound
		}

		// Some S3-compatible stores answer with a bare 404
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return nil, ErrBlobNotFound
		}

		return nil, errors.Wrap(err, "failed to get blob from S3")
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read blob body from S3")
	}

	return data, nil
}

var _ Client = (*s3Client)(nil)
