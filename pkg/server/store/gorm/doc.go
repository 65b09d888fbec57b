// Package gorm provides GORM-based implementations of the store interfaces
// defined in the parent store package.
//
// This package contains concrete implementations that use GORM for database
// operations against PostgreSQL. The interfaces they implement are defined in
// pkg/server/store. Every method takes the caller's context so that a
// cancelled request aborts its queries.
package gorm
