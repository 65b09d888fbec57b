package duty

import (
	"errors"
	"time"

	"github.com/doodlesbykumbi/acts/pkg/model"
)

// Retired is the duty title that ends an astronaut career.
const Retired = "RETIRED"

// ErrPersonRetired is returned when a duty is assigned after a RETIRED duty
var ErrPersonRetired = errors.New("person is retired")

// ErrStartNotAfterCurrent is returned when the new duty does not start
// after the person's current duty
var ErrStartNotAfterCurrent = errors.New("duty start date must be after the current duty start date")

// ErrRetiredBeforeCareerStart is returned when a RETIRED duty would end the
// career before it started
var ErrRetiredBeforeCareerStart = errors.New("RETIRED duty must not start before the career start date")

// Assignment is a request to put a person on a new duty.
type Assignment struct {
	Rank      string
	DutyTitle string
	StartDate time.Time
}

// Transition is the set of writes that applies an Assignment.
type Transition struct {
	// Detail is the snapshot to save. ID is zero when it must be created.
	Detail model.AstronautDetail
	// Closed is the previously open duty with its end date set, or nil.
	Closed *model.AstronautDuty
	// Duty is the new open duty.
	Duty model.AstronautDuty
}

// Plan computes the transition for assigning a to the person identified by
// personID. detail and current may be nil; neither is modified.
func Plan(personID int64, detail *model.AstronautDetail, current *model.AstronautDuty, a Assignment) (*Transition, error) {
	start := model.Date(a.StartDate)

	t := &Transition{}

	if current != nil {
		if current.DutyTitle == Retired {
			return nil, ErrPersonRetired
		}
		if !start.After(model.Date(current.DutyStartDate)) {
			return nil, ErrStartNotAfterCurrent
		}
		closed := *current
		end := start.AddDate(0, 0, -1)
		closed.DutyEndDate = &end
		t.Closed = &closed
	}

	if detail != nil {
		t.Detail = *detail
	} else {
		t.Detail = model.AstronautDetail{
			PersonID:        personID,
			CareerStartDate: start,
		}
	}
	t.Detail.CurrentRank = a.Rank
	t.Detail.CurrentDutyTitle = a.DutyTitle
	if a.DutyTitle == Retired {
		if start.Before(t.Detail.CareerStartDate) {
			return nil, ErrRetiredBeforeCareerStart
		}
		end := start
		t.Detail.CareerEndDate = &end
	}

	t.Duty = model.AstronautDuty{
		PersonID:      personID,
		Rank:          a.Rank,
		DutyTitle:     a.DutyTitle,
		DutyStartDate: start,
	}

	return t, nil
}

// Kind classifies the transition: "retirement", "succession" when a prior
// duty was closed, otherwise "first".
func (t *Transition) Kind() string {
	switch {
	case t.Duty.DutyTitle == Retired:
		return "retirement"
	case t.Closed != nil:
		return "succession"
	default:
		return "first"
	}
}
