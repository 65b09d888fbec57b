package gorm

import (
	"context"
	"errors"

	"github.com/doodlesbykumbi/acts/pkg/model"
	"github.com/doodlesbykumbi/acts/pkg/server/store"
	"github.com/doodlesbykumbi/acts/pkg/validate"

	"gorm.io/gorm"
)

var errCareerEndBeforeStart = validate.Errorf("careerEndDate must not be before careerStartDate")

// Ensure PeopleStore implements store.PeopleStore
var _ store.PeopleStore = (*PeopleStore)(nil)

const personAstronautColumns = "people.id AS person_id, people.name, " +
	"astronaut_details.current_rank, astronaut_details.current_duty_title, " +
	"astronaut_details.career_start_date, astronaut_details.career_end_date"

// PeopleStore implements store.PeopleStore using GORM
type PeopleStore struct {
	db *gorm.DB
}

// NewPeopleStore creates a new PeopleStore
func NewPeopleStore(db *gorm.DB) *PeopleStore {
	return &PeopleStore{db: db}
}

func (s *PeopleStore) withDetails(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("people").
		Select(personAstronautColumns).
		Joins("LEFT JOIN astronaut_details ON astronaut_details.person_id = people.id")
}

// ListPeople returns people with their snapshot ordered by name.
func (s *PeopleStore) ListPeople(ctx context.Context, limit int) ([]model.PersonAstronaut, error) {
	people := make([]model.PersonAstronaut, 0)
	query := s.withDetails(ctx).Order("people.name")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

// FetchPerson returns the person with exactly this name.
func (s *PeopleStore) FetchPerson(ctx context.Context, name string) (*model.PersonAstronaut, error) {
	var people []model.PersonAstronaut
	err := s.withDetails(ctx).
		Where("people.name = ?", name).
		Limit(1).
		Scan(&people).Error
	if err != nil {
		return nil, err
	}
	if len(people) == 0 {
		return nil, store.ErrPersonNotFound
	}
	return &people[0], nil
}

// CreatePerson inserts a person and returns its id.
func (s *PeopleStore) CreatePerson(ctx context.Context, name string) (int64, error) {
	person := model.Person{Name: name}
	if err := s.db.WithContext(ctx).Create(&person).Error; err != nil {
		if isUniqueViolation(err) {
			return 0, store.ErrPersonExists
		}
		return 0, err
	}
	return person.ID, nil
}

// UpdatePerson applies u to the person's snapshot in one transaction.
func (s *PeopleStore) UpdatePerson(ctx context.Context, name string, u store.PersonUpdate) (int64, error) {
	var personID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var person model.Person
		if err := tx.Where("name = ?", name).First(&person).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrPersonNotFound
			}
			return err
		}
		personID = person.ID

		if !u.HasAstronautFields() {
			return nil
		}

		detail, err := findDetail(tx, person.ID)
		if err != nil {
			return err
		}
		if detail == nil {
			detail = &model.AstronautDetail{
				PersonID:        person.ID,
				CareerStartDate: model.Date(u.DefaultCareerStartDate),
			}
		}
		u.Apply(detail)
		if detail.CareerEndDate != nil && detail.CareerEndDate.Before(detail.CareerStartDate) {
			return errCareerEndBeforeStart
		}

		if detail.ID == 0 {
			err = tx.Create(detail).Error
		} else {
			err = tx.Save(detail).Error
		}
		if isCheckViolation(err) {
			return errCareerEndBeforeStart
		}
		return err
	})
	if err != nil {
		return 0, err
	}
	return personID, nil
}

// findDetail returns the person's snapshot, or nil if it has none.
func findDetail(tx *gorm.DB, personID int64) (*model.AstronautDetail, error) {
	var detail model.AstronautDetail
	err := tx.Where("person_id = ?", personID).First(&detail).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}
