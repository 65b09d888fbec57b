package store

import (
	"context"
	"errors"
	"time"

	"github.com/doodlesbykumbi/acts/pkg/model"
)

// ErrPersonNotFound is returned when no person has the requested name
var ErrPersonNotFound = errors.New("person not found")

// ErrPersonExists is returned when a person with the same name already exists
var ErrPersonExists = errors.New("person already exists")

// PersonUpdate is a partial update of a person's astronaut snapshot. Nil
// fields are left untouched.
type PersonUpdate struct {
	CurrentRank      *string
	CurrentDutyTitle *string
	CareerStartDate  *time.Time
	CareerEndDate    *time.Time

	// DefaultCareerStartDate is used when the update creates the snapshot
	// and CareerStartDate is nil.
	DefaultCareerStartDate time.Time
}

// HasAstronautFields returns true if at least one snapshot field is set
func (u PersonUpdate) HasAstronautFields() bool {
	return u.CurrentRank != nil ||
		u.CurrentDutyTitle != nil ||
		u.CareerStartDate != nil ||
		u.CareerEndDate != nil
}

// Apply copies the set fields onto d. Dates are truncated to the day.
func (u PersonUpdate) Apply(d *model.AstronautDetail) {
	if u.CurrentRank != nil {
		d.CurrentRank = *u.CurrentRank
	}
	if u.CurrentDutyTitle != nil {
		d.CurrentDutyTitle = *u.CurrentDutyTitle
	}
	if u.CareerStartDate != nil {
		d.CareerStartDate = model.Date(*u.CareerStartDate)
	}
	if u.CareerEndDate != nil {
		end := model.Date(*u.CareerEndDate)
		d.CareerEndDate = &end
	}
}

// PeopleStore abstracts person storage operations
type PeopleStore interface {
	// ListPeople returns people with their snapshot ordered by name.
	// A limit <= 0 returns everyone.
	ListPeople(ctx context.Context, limit int) ([]model.PersonAstronaut, error)

	// FetchPerson returns the person with exactly this name.
	// Returns ErrPersonNotFound if there is none.
	FetchPerson(ctx context.Context, name string) (*model.PersonAstronaut, error)

	// CreatePerson inserts a person and returns its id.
	// Returns ErrPersonExists if the name is taken.
	CreatePerson(ctx context.Context, name string) (int64, error)

	// UpdatePerson applies u to the person's snapshot, creating the
	// snapshot when u carries astronaut fields and none exists yet.
	// Returns ErrPersonNotFound if there is no such person.
	UpdatePerson(ctx context.Context, name string, u PersonUpdate) (int64, error)
}
