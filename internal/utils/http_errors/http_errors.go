package utils

import (
	"errors"
	"net/http"

	"insightflow/internal/models"
)

// UserMessage is the text shown to the user for err: the remote service's
// message when there is one, fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *models.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Status picks the page status for a failed remote call.
func Status(err error) int {
	switch models.KindOf(err) {
	case models.KindTransport:
		return http.StatusBadGateway
	case models.KindValidation:
		return http.StatusUnprocessableEntity
	default:
		var apiErr *models.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	}
}

// SeeOther redirects after a form submission.
func SeeOther(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}
