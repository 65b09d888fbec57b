// Package command implements the ACTS write operations as mediator commands.
//
//   - CreatePerson registers a new, uniquely named person
//   - UpdatePerson partially updates a person's astronaut snapshot
//   - CreateAstronautDuty assigns a duty and applies the duty transition rules
//
// Every command has a pre-processor that validates it before the handler
// runs; handlers validate again so they are safe to call directly. Invalid
// commands fail with a *validate.Error.
package command
