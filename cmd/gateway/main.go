package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/app"
	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/config"
	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/gateway"
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
	gin.SetMode(gin.ReleaseMode)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h, err := app.NewHandler(ctx, cfg, logger, metrics.New(reg))
	if err != nil {
		logger.Error("Failed to initialize AWS clients", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.GatewayAddr,
		Handler:           gateway.NewRouter(h.Handle, reg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Local gateway listening", "addr", cfg.GatewayAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Gateway server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down gateway")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Gateway shutdown failed", "error", err)
	}
}
