package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/doodlesbykumbi/acts/pkg/duty"
	"github.com/doodlesbykumbi/acts/pkg/mediator"
	"github.com/doodlesbykumbi/acts/pkg/model"
	"github.com/doodlesbykumbi/acts/pkg/server/store"
	"github.com/doodlesbykumbi/acts/pkg/server/store/storetest"
	"github.com/doodlesbykumbi/acts/pkg/validate"
)

var today = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

type CommandSuite struct {
	suite.Suite
	people   *storetest.MockPeopleStore
	duties   *storetest.MockDutiesStore
	mediator *mediator.Mediator
	ctx      context.Context
}

func (s *CommandSuite) SetupTest() {
	s.people = storetest.NewMockPeopleStore()
	s.duties = storetest.NewMockDutiesStore()
	s.mediator = mediator.New()
	s.ctx = context.Background()
	s.Require().NoError(Register(s.mediator, s.people, s.duties, func() time.Time { return today }))
}

func (s *CommandSuite) TearDownTest() {
	s.people.AssertExpectations(s.T())
	s.duties.AssertExpectations(s.T())
}

func TestCommandSuite(t *testing.T) {
	suite.Run(t, new(CommandSuite))
}

func (s *CommandSuite) TestCreatePerson() {
	s.people.On("CreatePerson", mock.Anything, "Jane Doe").Return(int64(1), nil)

	id, err := mediator.Send[CreatePerson, int64](s.ctx, s.mediator, CreatePerson{Name: "  Jane Doe "})
	s.Require().NoError(err)
	s.Equal(int64(1), id)
}

func (s *CommandSuite) TestCreatePerson_EmptyName() {
	_, err := mediator.Send[CreatePerson, int64](s.ctx, s.mediator, CreatePerson{Name: "   "})
	s.Require().Error(err)
	s.True(validate.IsValidation(err))
	s.Contains(err.Error(), "name is required")
	s.people.AssertNotCalled(s.T(), "CreatePerson", mock.Anything, mock.Anything)
}

func (s *CommandSuite) TestCreatePerson_Duplicate() {
	s.people.On("CreatePerson", mock.Anything, "Jane Doe").Return(int64(0), store.ErrPersonExists)

	_, err := mediator.Send[CreatePerson, int64](s.ctx, s.mediator, CreatePerson{Name: "Jane Doe"})
	s.ErrorIs(err, store.ErrPersonExists)
}

func (s *CommandSuite) TestUpdatePerson() {
	start := date(2020, 1, 1)
	s.people.On("UpdatePerson", mock.Anything, "Jane Doe", store.PersonUpdate{
		CurrentRank:            strPtr("MAJ"),
		CareerStartDate:        &start,
		DefaultCareerStartDate: date(2024, 6, 15),
	}).Return(int64(4), nil)

	raw := time.Date(2020, 1, 1, 18, 0, 0, 0, time.UTC)
	id, err := mediator.Send[UpdatePerson, int64](s.ctx, s.mediator, UpdatePerson{
		Name:            "Jane Doe",
		CurrentRank:     strPtr(" MAJ "),
		CareerStartDate: &raw,
	})
	s.Require().NoError(err)
	s.Equal(int64(4), id)
}

func (s *CommandSuite) TestUpdatePerson_NotFound() {
	s.people.On("UpdatePerson", mock.Anything, "Nobody", mock.Anything).Return(int64(0), store.ErrPersonNotFound)

	_, err := mediator.Send[UpdatePerson, int64](s.ctx, s.mediator, UpdatePerson{Name: "Nobody", CurrentRank: strPtr("CPT")})
	s.ErrorIs(err, store.ErrPersonNotFound)
}

func (s *CommandSuite) TestUpdatePerson_Invalid() {
	start, end := date(2021, 1, 1), date(2020, 1, 1)
	tests := []struct {
		name string
		cmd  UpdatePerson
		want string
	}{
		{"missing name", UpdatePerson{}, "name is required"},
		{"empty rank", UpdatePerson{Name: "Jane", CurrentRank: strPtr(" ")}, "currentRank must not be empty"},
		{"empty title", UpdatePerson{Name: "Jane", CurrentDutyTitle: strPtr("")}, "currentDutyTitle must not be empty"},
		{"end before start", UpdatePerson{Name: "Jane", CareerStartDate: &start, CareerEndDate: &end}, "careerEndDate must not be before careerStartDate"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := mediator.Send[UpdatePerson, int64](s.ctx, s.mediator, tt.cmd)
			s.Require().Error(err)
			s.True(validate.IsValidation(err))
			s.Contains(err.Error(), tt.want)
		})
	}
	s.people.AssertNotCalled(s.T(), "UpdatePerson", mock.Anything, mock.Anything, mock.Anything)
}

func (s *CommandSuite) TestCreateAstronautDuty() {
	s.duties.On("AssignDuty", mock.Anything, "Jane Doe", duty.Assignment{
		Rank:      "CPT",
		DutyTitle: "PILOT",
		StartDate: date(2020, 1, 1),
	}).Return(&duty.Transition{
		Duty: model.AstronautDuty{ID: 11, PersonID: 3, Rank: "CPT", DutyTitle: "PILOT", DutyStartDate: date(2020, 1, 1)},
	}, nil)

	id, err := mediator.Send[CreateAstronautDuty, int64](s.ctx, s.mediator, CreateAstronautDuty{
		Name:          "Jane Doe",
		Rank:          "CPT",
		DutyTitle:     "PILOT",
		DutyStartDate: time.Date(2020, 1, 1, 23, 0, 0, 0, time.UTC),
	})
	s.Require().NoError(err)
	s.Equal(int64(11), id)
}

func (s *CommandSuite) TestCreateAstronautDuty_StartToday() {
	s.duties.On("AssignDuty", mock.Anything, "Jane Doe", mock.Anything).
		Return(&duty.Transition{Duty: model.AstronautDuty{ID: 12}}, nil)

	_, err := mediator.Send[CreateAstronautDuty, int64](s.ctx, s.mediator, CreateAstronautDuty{
		Name:          "Jane Doe",
		Rank:          "CPT",
		DutyTitle:     "PILOT",
		DutyStartDate: today.Add(10 * time.Hour),
	})
	s.NoError(err)
}

func (s *CommandSuite) TestCreateAstronautDuty_Invalid() {
	tests := []struct {
		name string
		cmd  CreateAstronautDuty
		want string
	}{
		{"missing name", CreateAstronautDuty{Rank: "CPT", DutyTitle: "PILOT", DutyStartDate: date(2020, 1, 1)}, "name is required"},
		{"missing rank", CreateAstronautDuty{Name: "Jane", DutyTitle: "PILOT", DutyStartDate: date(2020, 1, 1)}, "rank is required"},
		{"missing title", CreateAstronautDuty{Name: "Jane", Rank: "CPT", DutyStartDate: date(2020, 1, 1)}, "dutyTitle is required"},
		{"missing start", CreateAstronautDuty{Name: "Jane", Rank: "CPT", DutyTitle: "PILOT"}, "dutyStartDate is required"},
		{"future start", CreateAstronautDuty{Name: "Jane", Rank: "CPT", DutyTitle: "PILOT", DutyStartDate: date(2024, 6, 16)}, "must not be in the future"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := mediator.Send[CreateAstronautDuty, int64](s.ctx, s.mediator, tt.cmd)
			s.Require().Error(err)
			s.True(validate.IsValidation(err))
			s.Contains(err.Error(), tt.want)
		})
	}
	s.duties.AssertNotCalled(s.T(), "AssignDuty", mock.Anything, mock.Anything, mock.Anything)
}

func (s *CommandSuite) TestCreateAstronautDuty_StoreErrors() {
	for _, want := range []error{store.ErrPersonNotFound, store.ErrDutyExists, duty.ErrPersonRetired, duty.ErrStartNotAfterCurrent} {
		s.Run(want.Error(), func() {
			s.duties.ExpectedCalls = nil
			s.duties.On("AssignDuty", mock.Anything, "Jane Doe", mock.Anything).Return(nil, want).Once()

			_, err := mediator.Send[CreateAstronautDuty, int64](s.ctx, s.mediator, CreateAstronautDuty{
				Name:          "Jane Doe",
				Rank:          "CPT",
				DutyTitle:     "PILOT",
				DutyStartDate: date(2020, 1, 1),
			})
			s.ErrorIs(err, want)
		})
	}
}

func TestHandlersValidateWithoutPreProcessor(t *testing.T) {
	people := storetest.NewMockPeopleStore()
	h := &createPersonHandler{people: people}

	_, err := h.Handle(context.Background(), CreatePerson{})
	require.Error(t, err)
	assert.True(t, validate.IsValidation(err))
	people.AssertNotCalled(t, "CreatePerson", mock.Anything, mock.Anything)
}
