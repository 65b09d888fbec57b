// Package model defines the database models for ACTS.
//
// This package contains GORM models that map to the ACTS PostgreSQL schema
// created by the migrations in db/migrations.
//
// # Core Models
//
//   - Person: uniquely named personnel record
//   - AstronautDetail: the current-status snapshot of a person (one-to-one)
//   - AstronautDuty: a single entry of a person's duty history (one-to-many)
//   - PersonAstronaut: read projection joining a person with its snapshot
//
// # Database Schema
//
//   - people: person identities
//   - astronaut_details: current rank, duty title and career dates
//   - astronaut_duties: duty history, at most one open duty per person
//   - log_entries: audit log (see package audit)
//
// # Dates
//
// Career and duty dates are calendar dates. Use Date to normalize a
// time.Time before comparing or persisting it.
package model
