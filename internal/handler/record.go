package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nicopazaa/pgr301-eksamen-2025-nicolas/internal/analysis"
)

const (
	keyTimeLayout       = "20060102-150405"
	timestampTimeLayout = "2006-01-02T15:04:05.000000"
)

// Record is the stored outcome of one request. Exactly one of Findings and
// ComprehendError is set.
type Record struct {
	RequestID  string `json:"requestId"`
	Timestamp  string `json:"timestamp"`
	TextLength int    `json:"text_length"`
	Method     string `json:"method"`

	*analysis.Findings

	ComprehendError string `json:"comprehend_error,omitempty"`
}

func resultKey(prefix string, now time.Time, requestID string) string {
	return fmt.Sprintf("%scomprehend-%s-%s.json", prefix, now.UTC().Format(keyTimeLayout), requestID)
}

func formatTimestamp(now time.Time) string {
	return now.UTC().Format(timestampTimeLayout)
}

// marshalRecord renders the record with two-space indentation for people
// browsing the bucket.
func marshalRecord(rec *Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("failed to marshal analysis result: %w", err)
	}
	return buf.Bytes(), nil
}
