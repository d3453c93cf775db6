package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnalyze_ForwardsProxyEvent(t *testing.T) {
	var got handler.Request
	invoke := func(_ context.Context, req handler.Request) (events.APIGatewayProxyResponse, error) {
		got = req
		return events.APIGatewayProxyResponse{
			StatusCode: 200,
			Headers:    map[string]string{"Content-Type": "application/json", "Access-Control-Allow-Origin": "*"},
			Body:       `{"analysis":{}}`,
		}, nil
	}
	r := NewRouter(invoke, prometheus.NewRegistry(), discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"text": "Great quarterly results!"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, `{"analysis":{}}`, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body string
	require.NoError(t, json.Unmarshal(got.Body, &body))
	assert.Equal(t, `{"text": "Great quarterly results!"}`, body)
	assert.Equal(t, "POST", got.HTTPMethod)
	assert.Equal(t, "/analyze", got.Path)
	assert.Equal(t, "application/json", got.Headers["Content-Type"])
	assert.NotEmpty(t, got.RequestContext.RequestID)
}

func TestAnalyze_EmptyBodyIsNull(t *testing.T) {
	var got handler.Request
	invoke := func(_ context.Context, req handler.Request) (events.APIGatewayProxyResponse, error) {
		got = req
		return events.APIGatewayProxyResponse{StatusCode: 400, Body: `{"error":"Text field is required"}`}, nil
	}
	r := NewRouter(invoke, prometheus.NewRegistry(), discardLogger())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", nil))

	assert.Equal(t, 400, rec.Code)
	assert.Equal(t, "null", string(got.Body))
}

func TestAnalyze_HandlerError(t *testing.T) {
	invoke := func(context.Context, handler.Request) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{}, errors.New("runtime failure")
	}
	r := NewRouter(invoke, prometheus.NewRegistry(), discardLogger())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"message": "Internal server error"}`, rec.Body.String())
}

func TestPreflight(t *testing.T) {
	r := NewRouter(nil, prometheus.NewRegistry(), discardLogger())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/analyze", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "sentiment_requests_probe_total", Help: "probe"})
	reg.MustRegister(counter)
	counter.Inc()
	r := NewRouter(nil, reg, discardLogger())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "sentiment_requests_probe_total 1")
}
