package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/acts/pkg/mediator"
	"github.com/doodlesbykumbi/acts/pkg/model"
	"github.com/doodlesbykumbi/acts/pkg/server/store"
	"github.com/doodlesbykumbi/acts/pkg/server/store/storetest"
	"github.com/doodlesbykumbi/acts/pkg/validate"
)

func setup(t *testing.T, limit int) (*mediator.Mediator, *storetest.MockPeopleStore, *storetest.MockDutiesStore) {
	t.Helper()
	people := storetest.NewMockPeopleStore()
	duties := storetest.NewMockDutiesStore()
	m := mediator.New()
	require.NoError(t, Register(m, people, duties, limit))
	t.Cleanup(func() {
		people.AssertExpectations(t)
		duties.AssertExpectations(t)
	})
	return m, people, duties
}

func TestGetPeople(t *testing.T) {
	m, people, _ := setup(t, 500)
	want := []model.PersonAstronaut{{PersonID: 1, Name: "Alice"}, {PersonID: 2, Name: "Bob"}}
	people.On("ListPeople", mock.Anything, 500).Return(want, nil)

	got, err := mediator.Send[GetPeople, []model.PersonAstronaut](context.Background(), m, GetPeople{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetPeople_Unlimited(t *testing.T) {
	m, people, _ := setup(t, 0)
	people.On("ListPeople", mock.Anything, 0).Return([]model.PersonAstronaut{}, nil)

	got, err := mediator.Send[GetPeople, []model.PersonAstronaut](context.Background(), m, GetPeople{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetPersonByName(t *testing.T) {
	m, people, _ := setup(t, 0)
	p := &model.PersonAstronaut{PersonID: 1, Name: "Jane Doe"}
	people.On("FetchPerson", mock.Anything, "Jane Doe").Return(p, nil)

	got, err := mediator.Send[GetPersonByName, *model.PersonAstronaut](context.Background(), m, GetPersonByName{Name: "Jane Doe"})
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestGetPersonByName_Missing(t *testing.T) {
	m, people, _ := setup(t, 0)
	people.On("FetchPerson", mock.Anything, "Nobody").Return(nil, store.ErrPersonNotFound)

	got, err := mediator.Send[GetPersonByName, *model.PersonAstronaut](context.Background(), m, GetPersonByName{Name: "Nobody"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetPersonByName_EmptyName(t *testing.T) {
	m, _, _ := setup(t, 0)

	_, err := mediator.Send[GetPersonByName, *model.PersonAstronaut](context.Background(), m, GetPersonByName{Name: " "})
	assert.True(t, validate.IsValidation(err))
}

func TestGetAstronautDutiesByName(t *testing.T) {
	m, people, duties := setup(t, 0)
	p := &model.PersonAstronaut{PersonID: 3, Name: "Jane Doe"}
	end := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)
	list := []model.AstronautDuty{
		{ID: 2, PersonID: 3, Rank: "MAJ", DutyTitle: "COMMANDER", DutyStartDate: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 1, PersonID: 3, Rank: "CPT", DutyTitle: "PILOT", DutyStartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), DutyEndDate: &end},
	}
	people.On("FetchPerson", mock.Anything, "Jane Doe").Return(p, nil)
	duties.On("ListDuties", mock.Anything, int64(3)).Return(list, nil)

	got, err := mediator.Send[GetAstronautDutiesByName, *PersonDuties](context.Background(), m, GetAstronautDutiesByName{Name: "Jane Doe"})
	require.NoError(t, err)
	assert.Equal(t, *p, got.Person)
	assert.Equal(t, list, got.Duties)
}

func TestGetAstronautDutiesByName_NotFound(t *testing.T) {
	m, people, _ := setup(t, 0)
	people.On("FetchPerson", mock.Anything, "Nobody").Return(nil, store.ErrPersonNotFound)

	_, err := mediator.Send[GetAstronautDutiesByName, *PersonDuties](context.Background(), m, GetAstronautDutiesByName{Name: "Nobody"})
	assert.ErrorIs(t, err, store.ErrPersonNotFound)
}

func TestGetAstronautDutiesByName_StoreError(t *testing.T) {
	m, people, duties := setup(t, 0)
	people.On("FetchPerson", mock.Anything, "Jane Doe").Return(&model.PersonAstronaut{PersonID: 3, Name: "Jane Doe"}, nil)
	duties.On("ListDuties", mock.Anything, int64(3)).Return(nil, errors.New("connection reset"))

	_, err := mediator.Send[GetAstronautDutiesByName, *PersonDuties](context.Background(), m, GetAstronautDutiesByName{Name: "Jane Doe"})
	assert.EqualError(t, err, "connection reset")
}
