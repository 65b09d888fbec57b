package store

import (
	"context"
	"errors"

	"github.com/doodlesbykumbi/acts/pkg/duty"
	"github.com/doodlesbykumbi/acts/pkg/model"
)

// ErrDutyExists is returned when a duty with the same title and start date
// is already on record
var ErrDutyExists = errors.New("duty with this title and start date already exists")

// ErrDutyTaken is returned when another person already holds a duty with
// the same title and start date
var ErrDutyTaken = errors.New("duty with this title and start date belongs to another person")

// DutiesStore abstracts the duty history ledger
type DutiesStore interface {
	// ListDuties returns the person's duties, most recent start date first.
	ListDuties(ctx context.Context, personID int64) ([]model.AstronautDuty, error)

	// AssignDuty applies the assignment to the named person in a single
	// transaction and returns the persisted transition.
	// Returns ErrPersonNotFound, ErrDutyExists when the person already holds
	// the duty, ErrDutyTaken when someone else does, duty.ErrPersonRetired,
	// duty.ErrStartNotAfterCurrent or duty.ErrRetiredBeforeCareerStart.
	AssignDuty(ctx context.Context, name string, a duty.Assignment) (*duty.Transition, error)
}
