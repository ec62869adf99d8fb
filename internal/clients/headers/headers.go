// Package headers builds the header set attached to every remote call.
package headers

import (
	"context"
	"net/http"

	"insightflow/internal/session"
)

const (
	contentTypeJSON = "application/json"
	bearerPrefix    = "Bearer "
)

// JSON returns the headers for a request with a JSON body.
func JSON(ctx context.Context) http.Header {
	h := Multipart(ctx)
	h.Set("Content-Type", contentTypeJSON)
	return h
}

// Multipart returns the headers for a multipart request. No content type is
// set so that the encoder's boundary is used.
func Multipart(ctx context.Context) http.Header {
	h := make(http.Header)

	if store, ok := session.FromContext(ctx); ok {
		if token := store.Token(); token != "" {
			h.Set("Authorization", bearerPrefix+token)
		}
	}

	return h
}
