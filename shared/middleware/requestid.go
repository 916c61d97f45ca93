package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const RequestIdKey key = 1

const RequestIdHeader = "X-Request-Id"

// RequestId assigns a uuid to every request and echoes it in the response.
// An id supplied by a trusted proxy via X-Request-Id is kept as-is.
func RequestId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIdHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIdHeader, id)

		ctx := context.WithValue(r.Context(), RequestIdKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestId retrieves the request id from the context, "" when absent.
func GetRequestId(r *http.Request) string {
	id, ok := r.Context().Value(RequestIdKey).(string)
	if !ok {
		return ""
	}
	return id
}
