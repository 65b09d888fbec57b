// Package query implements the ACTS read operations as mediator queries.
// Queries never modify state.
package query
