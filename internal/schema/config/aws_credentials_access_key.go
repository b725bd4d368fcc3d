package config

import (
	"context"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/hashicorp/go-multierror"
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

// AwsCredentialsAccessKey provides explicit access key credentials. Values may reference environment variables
// as ${NAME}.
type AwsCredentialsAccessKey struct {
	Type            AwsCredentialsType `json:"type" yaml:"type"`
	AccessKeyId     string             `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string             `json:"secret_access_key" yaml:"secret_access_key"`
}

func (c *AwsCredentialsAccessKey) GetCredentialsType() AwsCredentialsType {
	return AwsCredentialsTypeAccessKey
}

func (c *AwsCredentialsAccessKey) GetAwsConfigLoadOptions(_ context.Context) ([]func(*awsconfig.LoadOptions) error, error) {
	return []func(*awsconfig.LoadOptions) error{
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(os.ExpandEnv(c.AccessKeyId), os.ExpandEnv(c.SecretAccessKey), ""),
		),
	}, nil
}

func (c *AwsCredentialsAccessKey) Validate(vc *common.ValidationContext) error {
	result := &multierror.Error{}

	if c.AccessKeyId == "" {
		result = multierror.Append(result, vc.NewErrorForField("access_key_id", "access_key_id must be specified"))
	}

	if c.SecretAccessKey == "" {
		result = multierror.Append(result, vc.NewErrorForField("secret_access_key", "secret_access_key must be specified"))
	}

	return result.ErrorOrNil()
}
