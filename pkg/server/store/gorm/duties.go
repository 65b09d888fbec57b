package gorm

import (
	"context"
	"errors"

	"github.com/doodlesbykumbi/acts/pkg/duty"
	"github.com/doodlesbykumbi/acts/pkg/model"
	"github.com/doodlesbykumbi/acts/pkg/server/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ensure DutiesStore implements store.DutiesStore
var _ store.DutiesStore = (*DutiesStore)(nil)

// DutiesStore implements store.DutiesStore using GORM
type DutiesStore struct {
	db *gorm.DB
}

// NewDutiesStore creates a new DutiesStore
func NewDutiesStore(db *gorm.DB) *DutiesStore {
	return &DutiesStore{db: db}
}

// ListDuties returns the person's duties, most recent start date first.
func (s *DutiesStore) ListDuties(ctx context.Context, personID int64) ([]model.AstronautDuty, error) {
	duties := make([]model.AstronautDuty, 0)
	err := s.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("duty_start_date desc").
		Order("id desc").
		Find(&duties).Error
	if err != nil {
		return nil, err
	}
	return duties, nil
}

// AssignDuty applies the assignment to the named person. The person row is
// locked for the duration of the transaction so that concurrent assignments
// to the same person serialize.
func (s *DutiesStore) AssignDuty(ctx context.Context, name string, a duty.Assignment) (*duty.Transition, error) {
	var transition *duty.Transition
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var person model.Person
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", name).
			First(&person).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrPersonNotFound
			}
			return err
		}

		var existing model.AstronautDuty
		err = tx.Where("duty_title = ? AND duty_start_date = ?", a.DutyTitle, model.Date(a.StartDate)).
			First(&existing).Error
		switch {
		case err == nil:
			if existing.PersonID == person.ID {
				return store.ErrDutyExists
			}
			return store.ErrDutyTaken
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		detail, err := findDetail(tx, person.ID)
		if err != nil {
			return err
		}
		current, err := findOpenDuty(tx, person.ID)
		if err != nil {
			return err
		}

		t, err := duty.Plan(person.ID, detail, current, a)
		if err != nil {
			return err
		}

		// The open duty must be closed before the new one is inserted.
		if t.Closed != nil {
			err := tx.Model(&model.AstronautDuty{}).
				Where("id = ?", t.Closed.ID).
				Update("duty_end_date", t.Closed.DutyEndDate).Error
			if err != nil {
				return err
			}
		}

		if t.Detail.ID == 0 {
			err = tx.Create(&t.Detail).Error
		} else {
			err = tx.Save(&t.Detail).Error
		}
		if err != nil {
			return err
		}

		if err := tx.Create(&t.Duty).Error; err != nil {
			// The person row is locked, so a concurrent insert of the same
			// pair came from another person.
			if isUniqueViolation(err) {
				return store.ErrDutyTaken
			}
			return err
		}

		transition = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transition, nil
}

// findOpenDuty returns the person's duty without an end date, or nil.
func findOpenDuty(tx *gorm.DB, personID int64) (*model.AstronautDuty, error) {
	var current model.AstronautDuty
	err := tx.Where("person_id = ? AND duty_end_date IS NULL", personID).First(&current).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &current, nil
}
