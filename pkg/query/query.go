package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doodlesbykumbi/acts/pkg/mediator"
	"github.com/doodlesbykumbi/acts/pkg/model"
	"github.com/doodlesbykumbi/acts/pkg/server/store"
	"github.com/doodlesbykumbi/acts/pkg/validate"
)

// GetPeople lists every person with their current snapshot, ordered by name.
type GetPeople struct{}

// GetPersonByName returns the person with exactly this name, or nil.
type GetPersonByName struct {
	Name string `validate:"required,max=255"`
}

// GetAstronautDutiesByName returns a person and their duty history.
type GetAstronautDutiesByName struct {
	Name string `validate:"required,max=255"`
}

// PersonDuties is the result of GetAstronautDutiesByName. Duties are ordered
// by start date, most recent first.
type PersonDuties struct {
	Person model.PersonAstronaut
	Duties []model.AstronautDuty
}

// Register adds the query handlers to m. limit caps GetPeople results; zero
// means unlimited.
func Register(m *mediator.Mediator, people store.PeopleStore, duties store.DutiesStore, limit int) error {
	if err := mediator.RegisterQuery[GetPeople, []model.PersonAstronaut](m, mediator.HandlerFunc[GetPeople, []model.PersonAstronaut](
		func(ctx context.Context, _ GetPeople) ([]model.PersonAstronaut, error) {
			return people.ListPeople(ctx, limit)
		},
	)); err != nil {
		return err
	}

	if err := mediator.RegisterQuery[GetPersonByName, *model.PersonAstronaut](m, mediator.HandlerFunc[GetPersonByName, *model.PersonAstronaut](
		func(ctx context.Context, q GetPersonByName) (*model.PersonAstronaut, error) {
			q.Name = strings.TrimSpace(q.Name)
			if err := validate.Struct(q); err != nil {
				return nil, err
			}
			p, err := people.FetchPerson(ctx, q.Name)
			if errors.Is(err, store.ErrPersonNotFound) {
				return nil, nil
			}
			return p, err
		},
	)); err != nil {
		return err
	}

	return mediator.RegisterQuery[GetAstronautDutiesByName, *PersonDuties](m, mediator.HandlerFunc[GetAstronautDutiesByName, *PersonDuties](
		func(ctx context.Context, q GetAstronautDutiesByName) (*PersonDuties, error) {
			q.Name = strings.TrimSpace(q.Name)
			if err := validate.Struct(q); err != nil {
				return nil, err
			}
			p, err := people.FetchPerson(ctx, q.Name)
			if err != nil {
				return nil, fmt.Errorf("fetching %q: %w", q.Name, err)
			}
			list, err := duties.ListDuties(ctx, p.PersonID)
			if err != nil {
				return nil, err
			}
			return &PersonDuties{Person: *p, Duties: list}, nil
		},
	))
}
