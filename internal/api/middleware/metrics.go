package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/attendance-api/internal/api/shared"
	"github.com/phrazzld/attendance-api/internal/metrics"
)

// unmatchedRoute labels requests that no route matched, so arbitrary paths
// cannot inflate label cardinality.
const unmatchedRoute = "unmatched"

// Metrics records each request's route pattern, status and latency, and the
// taxonomy tag of any error response.
func Metrics(rec metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, errorKind := shared.WithErrorKindSlot(r.Context())
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			rec.RecordRequest(r.Method, route, statusOf(ww), time.Since(start))
			if *errorKind != "" {
				rec.RecordError(*errorKind)
			}
		})
	}
}
