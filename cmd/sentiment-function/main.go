package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/app"
	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/config"
	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/logging"
	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Init(cfg.LogLevel, cfg.LogFormat)

	h, err := app.NewHandler(context.Background(), cfg, logger, metrics.Nop{})
	if err != nil {
		logger.Error("Failed to initialize AWS clients", "error", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
