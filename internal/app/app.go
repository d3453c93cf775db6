package app

import (
	"context"
	"log/slog"

	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/analysis"
	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/awsclient"
	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/config"
	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/handler"
	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/metrics"
	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/storage"
)

// NewHandler builds the AWS clients once and wires them into a request handler.
func NewHandler(ctx context.Context, cfg *config.Config, logger *slog.Logger, recorder metrics.Recorder) (*handler.Handler, error) {
	awsCfg, err := awsclient.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info("AWS clients initialized",
		"bucket", cfg.Bucket,
		"comprehend_region", cfg.ComprehendRegion,
		"endpoint_override", cfg.EndpointURL != "",
	)

	return handler.New(handler.Dependencies{
		Analyzer: analysis.NewComprehendAnalyzer(awsclient.NewComprehend(awsCfg, cfg)),
		Store:    storage.NewS3Store(awsclient.NewS3(awsCfg, cfg), cfg.Bucket),
		Metrics:  recorder,
		Logger:   logger,
	}, handler.Options{
		ResultPrefix: cfg.ResultPrefix,
		TruncateMode: handler.TruncateMode(cfg.TruncateMode),
	}), nil
}
