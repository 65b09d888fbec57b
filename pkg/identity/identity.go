package identity

import (
	"context"
	"net"
	"time"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the caller of a request.
type Identity struct {
	// Token claims, empty for anonymous callers
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time

	// Request context
	RequestID string
	RemoteIP  net.IP
}

// New creates an anonymous identity for the given request id.
func New(requestID string) *Identity {
	return &Identity{RequestID: requestID}
}

// WithRemoteIP sets the client IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// WithUser returns a copy of the identity authenticated as userID.
func (i *Identity) WithUser(userID string, issuedAt, expiresAt time.Time) *Identity {
	c := *i
	c.UserID = userID
	c.IssuedAt = issuedAt
	c.ExpiresAt = expiresAt
	return &c
}

// IsAnonymous returns true if no user has been authenticated.
func (i *Identity) IsAnonymous() bool {
	return i.UserID == ""
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}

// UserID returns the authenticated user stored in ctx, if any.
func UserID(ctx context.Context) string {
	if id, ok := Get(ctx); ok {
		return id.UserID
	}
	return ""
}

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	if id, ok := Get(ctx); ok {
		return id.RequestID
	}
	return ""
}
