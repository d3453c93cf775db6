// Package handler implements the sentiment function: analyse a text with
// Comprehend when the service is available, always store the outcome, and
// answer the API Gateway proxy call.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/jonboulle/clockwork"

	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/analysis"
	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/metrics"
	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/storage"
)

const DefaultResultPrefix = "midlertidig/"

// Dependencies are the collaborators a Handler is built from. Metrics, Clock
// and Logger are optional.
type Dependencies struct {
	Analyzer analysis.Analyzer
	Store    storage.Store
	Metrics  metrics.Recorder
	Clock    clockwork.Clock
	Logger   *slog.Logger
}

type Options struct {
	ResultPrefix string
	TruncateMode TruncateMode
}

type Handler struct {
	analyzer analysis.Analyzer
	store    storage.Store
	metrics  metrics.Recorder
	clock    clockwork.Clock
	logger   *slog.Logger

	resultPrefix string
	truncateMode TruncateMode
}

func New(deps Dependencies, opts Options) *Handler {
	h := &Handler{
		analyzer:     deps.Analyzer,
		store:        deps.Store,
		metrics:      deps.Metrics,
		clock:        deps.Clock,
		logger:       deps.Logger,
		resultPrefix: opts.ResultPrefix,
		truncateMode: opts.TruncateMode,
	}
	if h.metrics == nil {
		h.metrics = metrics.Nop{}
	}
	if h.clock == nil {
		h.clock = clockwork.NewRealClock()
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.resultPrefix == "" {
		h.resultPrefix = DefaultResultPrefix
	}
	if h.truncateMode == "" {
		h.truncateMode = TruncateChars
	}
	return h
}

// Handle is the Lambda entry point. It never returns an error: every fault
// that is not absorbed by the analysis step becomes a 500 response.
func (h *Handler) Handle(ctx context.Context, req Request) (resp events.APIGatewayProxyResponse, err error) {
	logger := h.requestLogger(ctx, req)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unhandled error", "error", fmt.Sprint(r))
			resp, err = createErrorResponse(http.StatusInternalServerError, fmt.Sprint(r)), nil
		}
		h.metrics.ObserveRequest(resp.StatusCode)
	}()

	resp, err = h.process(ctx, logger, req)
	if err != nil {
		logger.Error("Unhandled error", "error", err)
		return createErrorResponse(http.StatusInternalServerError, err.Error()), nil
	}
	return resp, nil
}

func (h *Handler) process(ctx context.Context, logger *slog.Logger, req Request) (events.APIGatewayProxyResponse, error) {
	fields := decodeBody(req.Body, req.IsBase64Encoded)

	text, err := textField(fields)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if text == "" {
		logger.Info("Rejected request without text")
		return badRequest(), nil
	}

	requestID := requestIDField(fields)
	if requestID == "" {
		requestID = deriveRequestID(text)
	}

	originalBytes := len(text)
	text = truncate(text, h.truncateMode)

	now := h.clock.Now()
	key := resultKey(h.resultPrefix, now, requestID)
	location := h.store.Location(key)

	logger = logger.With("request_id", requestID)
	logger.Info("Processing request",
		"text_bytes", originalBytes,
		"truncated", len(text) != originalBytes,
		"s3_location", location,
	)

	record := &Record{
		RequestID:  requestID,
		Timestamp:  formatTimestamp(now),
		TextLength: utf8.RuneCountInString(text),
		Method:     analysis.Method,
	}
	h.analyze(ctx, logger, text, record)

	body, err := marshalRecord(record)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	err = h.store.Put(ctx, storage.Object{
		Key:         key,
		Body:        body,
		ContentType: "application/json",
		Metadata:    map[string]string{"request-id": requestID},
	})
	h.metrics.ObserveStored(err == nil)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	logger.Info("Result stored",
		"s3_location", location,
		"comprehend_available", record.Findings != nil,
	)

	return jsonResponse(http.StatusOK, SuccessResponse{
		Analysis:   record,
		S3Location: location,
		Note:       resultNote,
	})
}

// analyze fills record from the analyzer. Failures are logged and captured
// on the record, never returned.
func (h *Handler) analyze(ctx context.Context, logger *slog.Logger, text string, record *Record) {
	start := h.clock.Now()
	findings, err := h.analyzer.Analyze(ctx, text)
	duration := h.clock.Since(start)

	if err != nil {
		code := analysis.ErrorCode(err)
		logger.Warn("Comprehend error", "error", err.Error(), "error_code", code)
		h.metrics.ObserveAnalysisFailure(code, duration)
		record.ComprehendError = err.Error()
		return
	}

	logger.Debug("Comprehend analysis completed",
		"sentiment", findings.OverallSentiment,
		"companies", len(findings.CompaniesDetected),
		"duration", duration,
	)
	h.metrics.ObserveAnalysis(findings, duration)
	record.Findings = findings
}

func (h *Handler) requestLogger(ctx context.Context, req Request) *slog.Logger {
	invocationID := req.RequestContext.RequestID
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		invocationID = lc.AwsRequestID
	}
	return h.logger.With("aws_request_id", invocationID, "method", req.HTTPMethod, "path", req.Path)
}
