package http

import (
	"encoding/json"
	"net/http"

	apperrors "tabletime/pkg/errors"
)

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError renders err as an ErrorResponse. Anything that is not an
// AppError is reported as a generic 500 so internals never leak.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	if appErr.Code == apperrors.CodeInternal {
		return WriteJSON(w, http.StatusInternalServerError, apperrors.ErrorResponse{
			Code:    apperrors.CodeInternal,
			Message: "Internal server error",
		})
	}
	return WriteJSON(w, appErr.StatusCode(), appErr.Response())
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, data)
}

func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, data)
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
