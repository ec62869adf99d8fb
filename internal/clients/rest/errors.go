package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"insightflow/internal/models"
)

type errorBody struct {
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

// StatusError builds the error for a failed response whose body is ignored.
func StatusError(resp *http.Response, fallback string) error {
	return &models.APIError{Kind: models.KindFallback, StatusCode: resp.StatusCode, Message: fallback}
}

// MessageError surfaces the body's "message" field, or fallback when the body
// is not JSON or carries no message.
func MessageError(resp *http.Response, fallback string) error {
	data, _ := io.ReadAll(resp.Body)

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil || body.Message == "" {
		return &models.APIError{Kind: models.KindFallback, StatusCode: resp.StatusCode, Message: fallback, Err: err}
	}

	return &models.APIError{Kind: models.KindMessage, StatusCode: resp.StatusCode, Message: body.Message}
}

// ValidationError is MessageError with one more tier in front: an "errors"
// map (field -> messages) is flattened in body order and joined with ", ".
func ValidationError(resp *http.Response, fallback string) error {
	data, _ := io.ReadAll(resp.Body)

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return &models.APIError{Kind: models.KindFallback, StatusCode: resp.StatusCode, Message: fallback, Err: err}
	}

	if joined, ok := flattenErrors(body.Errors); ok && joined != "" {
		return &models.APIError{Kind: models.KindValidation, StatusCode: resp.StatusCode, Message: joined}
	}

	if body.Message != "" {
		return &models.APIError{Kind: models.KindMessage, StatusCode: resp.StatusCode, Message: body.Message}
	}

	return &models.APIError{Kind: models.KindFallback, StatusCode: resp.StatusCode, Message: fallback}
}

// flattenErrors walks an object or array of validation messages. Array values
// are flattened one level. ok is false when raw is absent or not a container.
func flattenErrors(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return "", false
	}

	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return "", false
	}

	parts := make([]string, 0)

	for dec.More() {
		if delim == '{' {
			if _, err := dec.Token(); err != nil {
				return "", false
			}
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return "", false
		}

		if list, isList := value.([]any); isList {
			for _, item := range list {
				parts = append(parts, jsString(item))
			}
			continue
		}

		parts = append(parts, jsString(value))
	}

	return strings.Join(parts, ", "), true
}

func jsString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			items = append(items, jsString(item))
		}
		return strings.Join(items, ",")
	default:
		return "[object Object]"
	}
}
