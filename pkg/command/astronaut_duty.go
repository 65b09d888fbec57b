package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doodlesbykumbi/acts/pkg/duty"
	"github.com/doodlesbykumbi/acts/pkg/metrics"
	"github.com/doodlesbykumbi/acts/pkg/model"
	"github.com/doodlesbykumbi/acts/pkg/server/store"
	"github.com/doodlesbykumbi/acts/pkg/validate"
)

// CreateAstronautDuty assigns a new duty to the named person. The handler
// returns the new duty id.
type CreateAstronautDuty struct {
	Name          string    `validate:"required,max=255"`
	Rank          string    `validate:"required,max=255"`
	DutyTitle     string    `validate:"required,max=255"`
	DutyStartDate time.Time `validate:"-"`
}

func (c CreateAstronautDuty) normalize() CreateAstronautDuty {
	c.Name = strings.TrimSpace(c.Name)
	c.Rank = strings.TrimSpace(c.Rank)
	c.DutyTitle = strings.TrimSpace(c.DutyTitle)
	if !c.DutyStartDate.IsZero() {
		c.DutyStartDate = model.Date(c.DutyStartDate)
	}
	return c
}

func (c CreateAstronautDuty) validate(today time.Time) error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.DutyStartDate.IsZero() {
		return validate.Errorf("dutyStartDate is required")
	}
	if c.DutyStartDate.After(model.Date(today)) {
		return validate.Errorf("dutyStartDate must not be in the future")
	}
	return nil
}

type dutyPreProcessor struct {
	now func() time.Time
}

func (p dutyPreProcessor) Process(_ context.Context, c CreateAstronautDuty) error {
	return c.normalize().validate(p.now())
}

type createAstronautDutyHandler struct {
	duties store.DutiesStore
	now    func() time.Time
}

func (h *createAstronautDutyHandler) Handle(ctx context.Context, c CreateAstronautDuty) (int64, error) {
	c = c.normalize()
	if err := c.validate(h.now()); err != nil {
		return 0, err
	}

	t, err := h.duties.AssignDuty(ctx, c.Name, duty.Assignment{
		Rank:      c.Rank,
		DutyTitle: c.DutyTitle,
		StartDate: c.DutyStartDate,
	})
	if err != nil {
		return 0, fmt.Errorf("assigning %s to %q: %w", c.DutyTitle, c.Name, err)
	}

	metrics.DutiesAssignedTotal.WithLabelValues(t.Kind()).Inc()
	return t.Duty.ID, nil
}
