package command

import (
	"time"

	"github.com/doodlesbykumbi/acts/pkg/mediator"
	"github.com/doodlesbykumbi/acts/pkg/server/store"
)

// Register adds the command handlers and their pre-processors to m. now
// supplies the current time for date validation and defaults.
func Register(m *mediator.Mediator, people store.PeopleStore, duties store.DutiesStore, now func() time.Time) error {
	if err := mediator.RegisterCommand[CreatePerson, int64](m, &createPersonHandler{people: people}); err != nil {
		return err
	}
	mediator.AddPreProcessor[CreatePerson](m, mediator.PreProcessorFunc[CreatePerson](preCreatePerson))

	if err := mediator.RegisterCommand[UpdatePerson, int64](m, &updatePersonHandler{people: people, now: now}); err != nil {
		return err
	}
	mediator.AddPreProcessor[UpdatePerson](m, mediator.PreProcessorFunc[UpdatePerson](preUpdatePerson))

	if err := mediator.RegisterCommand[CreateAstronautDuty, int64](m, &createAstronautDutyHandler{duties: duties, now: now}); err != nil {
		return err
	}
	mediator.AddPreProcessor[CreateAstronautDuty](m, dutyPreProcessor{now: now})

	return nil
}
