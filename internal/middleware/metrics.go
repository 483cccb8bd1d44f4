package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/billsyncorg/billsync/internal/metrics"
)

// Metrics records request duration per route. The route label uses the mux
// path template so per-id URLs do not explode the label cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		metrics.RequestDuration.WithLabelValues(
			route, r.Method, strconv.Itoa(rec.status),
		).Observe(time.Since(start).Seconds())
	})
}
