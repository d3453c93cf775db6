// Package gateway emulates the API Gateway proxy integration in front of the
// handler so the function can be run and scraped locally.
package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/handler"
)

// InvokeFunc is the Lambda handler signature the router forwards to.
type InvokeFunc func(ctx context.Context, req handler.Request) (events.APIGatewayProxyResponse, error)

func NewRouter(invoke InvokeFunc, gatherer prometheus.Gatherer, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	r.OPTIONS("/analyze", preflight)
	r.POST("/analyze", invokeHandler(invoke, logger))

	return r
}

func preflight(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token")
	c.Status(http.StatusOK)
}

func invokeHandler(invoke InvokeFunc, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := proxyRequest(c)
		if err != nil {
			logger.Error("Failed to read request body", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Could not read request body"})
			return
		}

		resp, err := invoke(c.Request.Context(), req)
		if err != nil {
			// API Gateway answers this way when the integration itself fails.
			logger.Error("Handler returned error", "error", err, "request_id", req.RequestContext.RequestID)
			c.JSON(http.StatusBadGateway, gin.H{"message": "Internal server error"})
			return
		}

		for key, value := range resp.Headers {
			c.Header(key, value)
		}
		c.Data(resp.StatusCode, resp.Headers["Content-Type"], []byte(resp.Body))
	}
}

// proxyRequest builds the event API Gateway would send: the raw body as a
// JSON string, or null when the request has no body.
func proxyRequest(c *gin.Context) (handler.Request, error) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return handler.Request{}, err
	}

	body := json.RawMessage("null")
	if len(raw) > 0 {
		body, err = json.Marshal(string(raw))
		if err != nil {
			return handler.Request{}, err
		}
	}

	headers := make(map[string]string, len(c.Request.Header))
	for key := range c.Request.Header {
		headers[key] = c.Request.Header.Get(key)
	}

	return handler.Request{
		HTTPMethod: c.Request.Method,
		Path:       c.Request.URL.Path,
		Headers:    headers,
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:  uuid.NewString(),
			HTTPMethod: c.Request.Method,
			Path:       c.Request.URL.Path,
			Stage:      "local",
		},
		Body: body,
	}, nil
}
