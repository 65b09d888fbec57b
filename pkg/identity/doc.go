// Package identity carries the caller of an ACTS request through the
// request context.
//
// The request id middleware creates an Identity for every request; the
// authenticator fills in the user when a bearer token is presented. Handlers
// and the audit behavior read it back with Get.
//
// # Basic Usage
//
//	id := identity.New(requestID).WithRemoteIP(clientIP)
//	ctx = identity.Set(ctx, id)
//
//	// later
//	id, ok := identity.Get(ctx)
//
// A request without a token keeps an anonymous identity (empty UserID).
// CLI invocations build their identity from the operating system user.
package identity
