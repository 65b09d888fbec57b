// Package store provides storage abstractions for the ACTS server.
//
// This package defines interfaces for database operations, allowing the
// command and query handlers to be decoupled from the specific database
// implementation. The gorm subpackage implements them on PostgreSQL; tests
// substitute testify mocks.
//
// # Available Stores
//
//   - PeopleStore: person records and their astronaut snapshot
//   - DutiesStore: the duty history ledger and duty assignment
//   - HealthStore: database connectivity checks
//
// # Usage
//
//	people := gorm.NewPeopleStore(db)
//	p, err := people.FetchPerson(ctx, "Jane Doe")
//	if err != nil {
//	    if errors.Is(err, store.ErrPersonNotFound) {
//	        // Handle not found
//	    }
//	}
package store
