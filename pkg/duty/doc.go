// Package duty implements the duty transition rules of ACTS.
//
// Assigning a new duty to a person touches three records: the person's
// astronaut snapshot, the currently open duty and the new duty itself.
// Plan computes all three from the current state without touching the
// database, so the store can apply the result inside a single transaction.
//
// # Rules
//
//   - The snapshot takes the new rank and duty title. A snapshot created by
//     the assignment starts the career on the duty start date.
//   - A RETIRED duty sets the career end date to the duty start date and is
//     terminal: no duty may follow it.
//   - The open duty, if any, ends the day before the new duty starts, so the
//     new duty must start strictly after it.
//   - The new duty is open (no end date).
package duty
