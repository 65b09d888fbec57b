package middleware

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/acts/pkg/metrics"
)

// Metrics records request count and latency per route template. It must be
// installed with Router.Use so the matched route is known.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}

		m := httpsnoop.CaptureMetrics(next, w, r)

		metrics.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(m.Code)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(m.Duration.Seconds())
	})
}
