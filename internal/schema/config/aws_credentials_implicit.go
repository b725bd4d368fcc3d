package config

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

// AwsCredentialsImplicit uses the default AWS credential chain (environment variables, the shared credentials
// file and instance roles).
type AwsCredentialsImplicit struct {
	Type AwsCredentialsType `json:"type" yaml:"type"`
}

func (c *AwsCredentialsImplicit) GetCredentialsType() AwsCredentialsType {
	return AwsCredentialsTypeImplicit
}

func (c *AwsCredentialsImplicit) GetAwsConfigLoadOptions(_ context.Context) ([]func(*awsconfig.LoadOptions) error, error) {
	return nil, nil
}

func (c *AwsCredentialsImplicit) Validate(_ *common.ValidationContext) error {
	return nil
}
