package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/doodlesbykumbi/acts/pkg/identity"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// RequestID reuses the caller's X-Request-ID or generates one, echoes it on
// the response and stores an anonymous identity in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ident := identity.New(id).WithRemoteIP(remoteIP(r))
		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), ident)))
	})
}

func remoteIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}
