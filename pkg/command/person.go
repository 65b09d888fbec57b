package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doodlesbykumbi/acts/pkg/model"
	"github.com/doodlesbykumbi/acts/pkg/server/store"
	"github.com/doodlesbykumbi/acts/pkg/validate"
)

// CreatePerson creates a person. The handler returns the new person id.
type CreatePerson struct {
	Name string `validate:"required,max=255"`
}

func (c CreatePerson) normalize() CreatePerson {
	c.Name = strings.TrimSpace(c.Name)
	return c
}

func preCreatePerson(_ context.Context, c CreatePerson) error {
	return validate.Struct(c.normalize())
}

type createPersonHandler struct {
	people store.PeopleStore
}

func (h *createPersonHandler) Handle(ctx context.Context, c CreatePerson) (int64, error) {
	c = c.normalize()
	if err := validate.Struct(c); err != nil {
		return 0, err
	}
	return h.people.CreatePerson(ctx, c.Name)
}

// UpdatePerson updates the astronaut snapshot of the named person. Nil
// fields are left untouched. The handler returns the person id.
type UpdatePerson struct {
	Name             string     `validate:"required,max=255"`
	CurrentRank      *string    `validate:"omitnil,max=255"`
	CurrentDutyTitle *string    `validate:"omitnil,max=255"`
	CareerStartDate  *time.Time `validate:"-"`
	CareerEndDate    *time.Time `validate:"-"`
}

func (c UpdatePerson) normalize() UpdatePerson {
	c.Name = strings.TrimSpace(c.Name)
	c.CurrentRank = trimmed(c.CurrentRank)
	c.CurrentDutyTitle = trimmed(c.CurrentDutyTitle)
	if c.CareerStartDate != nil {
		d := model.Date(*c.CareerStartDate)
		c.CareerStartDate = &d
	}
	if c.CareerEndDate != nil {
		d := model.Date(*c.CareerEndDate)
		c.CareerEndDate = &d
	}
	return c
}

func (c UpdatePerson) validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.CurrentRank != nil && *c.CurrentRank == "" {
		return validate.Errorf("currentRank must not be empty")
	}
	if c.CurrentDutyTitle != nil && *c.CurrentDutyTitle == "" {
		return validate.Errorf("currentDutyTitle must not be empty")
	}
	if c.CareerStartDate != nil && c.CareerEndDate != nil && c.CareerEndDate.Before(*c.CareerStartDate) {
		return validate.Errorf("careerEndDate must not be before careerStartDate")
	}
	return nil
}

func preUpdatePerson(_ context.Context, c UpdatePerson) error {
	return c.normalize().validate()
}

type updatePersonHandler struct {
	people store.PeopleStore
	now    func() time.Time
}

func (h *updatePersonHandler) Handle(ctx context.Context, c UpdatePerson) (int64, error) {
	c = c.normalize()
	if err := c.validate(); err != nil {
		return 0, err
	}

	id, err := h.people.UpdatePerson(ctx, c.Name, store.PersonUpdate{
		CurrentRank:            c.CurrentRank,
		CurrentDutyTitle:       c.CurrentDutyTitle,
		CareerStartDate:        c.CareerStartDate,
		CareerEndDate:          c.CareerEndDate,
		DefaultCareerStartDate: model.Date(h.now()),
	})
	if err != nil {
		return 0, fmt.Errorf("updating %q: %w", c.Name, err)
	}
	return id, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
