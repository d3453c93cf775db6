package handler

import (
	"bytes"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
)

// MaxTextBytes is Comprehend's per-document limit for the synchronous APIs.
const MaxTextBytes = 5000

// Request is an API Gateway proxy event. Body is kept raw because direct
// invocations may send it as an object instead of a JSON-encoded string.
type Request struct {
	HTTPMethod      string                               `json:"httpMethod"`
	Path            string                               `json:"path"`
	Headers         map[string]string                    `json:"headers"`
	RequestContext  events.APIGatewayProxyRequestContext `json:"requestContext"`
	Body            json.RawMessage                      `json:"body"`
	IsBase64Encoded bool                                 `json:"isBase64Encoded"`
}

// TruncateMode selects how oversized text is shortened.
type TruncateMode string

const (
	// TruncateChars keeps the first MaxTextBytes code points once the byte
	// length exceeds MaxTextBytes. Multi-byte text can stay above the limit.
	TruncateChars TruncateMode = "chars"
	// TruncateBytes cuts at the last UTF-8 boundary within MaxTextBytes.
	TruncateBytes TruncateMode = "bytes"
)

// decodeBody turns the event body into a JSON object. Anything that is not
// an object (missing, null, malformed, array, scalar) yields an empty one.
func decodeBody(raw json.RawMessage, base64Encoded bool) map[string]json.RawMessage {
	fields := map[string]json.RawMessage{}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return fields
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			return fields
		}
		if base64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return fields
			}
			s = string(decoded)
		}
		raw = []byte(s)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return fields
	}
	return obj
}

// textField returns the text to analyse. Falsy values (missing, null, "",
// false, 0, empty array or object) yield "". Any other non-string is an error.
func textField(fields map[string]json.RawMessage) (string, error) {
	raw, ok := fields["text"]
	if !ok {
		return "", nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("failed to decode text field: %w", err)
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	if falsy(v) {
		return "", nil
	}
	return "", fmt.Errorf("text field must be a string, got %s", jsonKind(v))
}

// requestIDField returns the caller's requestId, or "" when it is absent or
// falsy. Non-string values are used through their JSON text.
func requestIDField(fields map[string]json.RawMessage) string {
	raw, ok := fields["requestId"]
	if !ok {
		return ""
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil || falsy(v) {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(raw)
	}
	return compact.String()
}

func falsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

func jsonKind(v any) string {
	switch v.(type) {
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

// truncate shortens text once its UTF-8 length exceeds MaxTextBytes.
func truncate(text string, mode TruncateMode) string {
	if len(text) <= MaxTextBytes {
		return text
	}

	if mode == TruncateBytes {
		cut := MaxTextBytes
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		return text[:cut]
	}

	count := 0
	for i := range text {
		if count == MaxTextBytes {
			return text[:i]
		}
		count++
	}
	return text
}

// deriveRequestID is the first 8 hex characters of the MD5 digest of text.
func deriveRequestID(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])[:8]
}
