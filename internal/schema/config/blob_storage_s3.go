package config

import (
	"context"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hashicorp/go-multierror"
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

// BlobStorageS3 reads from an S3 bucket or an S3-compatible store when Endpoint is set.
type BlobStorageS3 struct {
	Provider       BlobStorageProvider `json:"provider" yaml:"provider"`
	Endpoint       string              `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Region         string              `json:"region,omitempty" yaml:"region,omitempty"`
	Bucket         string              `json:"bucket" yaml:"bucket"`
	Credentials    *AwsCredentials     `json:"credentials,omitempty" yaml:"credentials,omitempty"`
	ForcePathStyle bool                `json:"force_path_style,omitempty" yaml:"force_path_style,omitempty"`
	Prefix         string              `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

func (b *BlobStorageS3) GetProvider() BlobStorageProvider {
	return BlobStorageProviderS3
}

func (b *BlobStorageS3) GetAwsConfigLoadOptions(ctx context.Context) ([]func(*awsconfig.LoadOptions) error, error) {
	opts, err := b.Credentials.GetAwsConfigLoadOptions(ctx)
	if err != nil {
		return nil, err
	}

	if b.Region != "" {
		opts = append(opts, awsconfig.WithRegion(b.Region))
	}

	return opts, nil
}

func (b *BlobStorageS3) GetS3Options() []func(*s3.Options) {
	s3Opts := make([]func(*s3.Options), 0)

	if b.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(b.Endpoint)
		})
	}

	if b.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	return s3Opts
}

func (b *BlobStorageS3) Validate(vc *common.ValidationContext) error {
	result := &multierror.Error{}

	if b.Bucket == "" {
		result = multierror.Append(result, vc.NewErrorForField("bucket", "bucket must be specified"))
	}

	if b.Endpoint != "" {
		if u, err := url.Parse(b.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
			result = multierror.Append(result, vc.NewErrorfForField("endpoint", "endpoint '%s' is not an absolute url", b.Endpoint))
		}
	}

	if err := b.Credentials.Validate(vc.PushField("credentials")); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}
