// Package endpoints contains the HTTP handlers of the ACTS REST API. Each
// handler decodes its request, dispatches it through the mediator and wraps
// the result in a Response envelope.
package endpoints
