package config

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/invopop/jsonschema"
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

type AwsCredentialsType string

const (
	AwsCredentialsTypeAccessKey AwsCredentialsType = "access_key"
	AwsCredentialsTypeImplicit  AwsCredentialsType = "implicit"
)

// AwsCredentialsImpl is the interface implemented by concrete AWS credential configurations.
type AwsCredentialsImpl interface {
	GetCredentialsType() AwsCredentialsType
	GetAwsConfigLoadOptions(ctx context.Context) ([]func(*awsconfig.LoadOptions) error, error)
	Validate(vc *common.ValidationContext) error
}

// AwsCredentials is the holder for a AwsCredentialsImpl instance.
type AwsCredentials struct {
	InnerVal AwsCredentialsImpl `json:"-" yaml:"-"`
}

func (AwsCredentials) JSONSchema() *jsonschema.Schema {
	return discriminatedObjectSchema("type", string(AwsCredentialsTypeAccessKey), string(AwsCredentialsTypeImplicit))
}

func (c *AwsCredentials) GetCredentialsType() AwsCredentialsType {
	if c == nil || c.InnerVal == nil {
		return ""
	}
	return c.InnerVal.GetCredentialsType()
}

// GetAwsConfigLoadOptions returns no options when credentials are not configured so the default chain applies.
func (c *AwsCredentials) GetAwsConfigLoadOptions(ctx context.Context) ([]func(*awsconfig.LoadOptions) error, error) {
	if c == nil || c.InnerVal == nil {
		return nil, nil
	}

	return c.InnerVal.GetAwsConfigLoadOptions(ctx)
}

func (c *AwsCredentials) Validate(vc *common.ValidationContext) error {
	if c == nil || c.InnerVal == nil {
		return nil
	}
	return c.InnerVal.Validate(vc)
}

var _ AwsCredentialsImpl = (*AwsCredentials)(nil)
