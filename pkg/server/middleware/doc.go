// Package middleware provides the HTTP middleware of the ACTS server.
//
//   - RequestID assigns every request an id and an anonymous identity
//   - JWTAuthenticator authenticates HS256 bearer tokens
//   - Metrics records Prometheus request counters and latencies
package middleware
