package middleware

import (
	"net/http"

	"github.com/fitpass/gym-checkin-system/internal/domain/types"
	wrap "github.com/fitpass/gym-checkin-system/pkg/logger/wrapper"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns every request an id, reusing the client-provided
// X-Request-ID header when present. The id travels through the context
// and shows up in every log record for the request.
func (m *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := types.WithRequestIDContext(r.Context(), id)
		ctx = wrap.WithRequestID(ctx, id)

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
