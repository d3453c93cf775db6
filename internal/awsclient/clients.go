package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/config"
)

// LoadConfig loads the shared AWS configuration (credentials, default region)
// from the execution environment.
func LoadConfig(ctx context.Context) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return cfg, nil
}

// NewComprehend pins the client to the configured Comprehend region, which may
// differ from the function's own region.
func NewComprehend(awsCfg aws.Config, cfg *config.Config) *comprehend.Client {
	return comprehend.NewFromConfig(awsCfg, func(o *comprehend.Options) {
		o.Region = cfg.ComprehendRegion
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
		}
	})
}

func NewS3(awsCfg aws.Config, cfg *config.Config) *s3.Client {
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
		}
	})
}
