package middleware

import (
	"net/http"

	apperrors "tabletime/pkg/errors"
	httputil "tabletime/pkg/http"
)

const CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"

// MaxRequestSize rejects declared oversize bodies up front and caps the
// rest with http.MaxBytesReader, which surfaces as a decode error.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				_ = httputil.WriteError(w, apperrors.New(CodePayloadTooLarge, "Request body too large", http.StatusRequestEntityTooLarge))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
