// Package storetest provides testify mocks of the store interfaces.
package storetest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/acts/pkg/duty"
	"github.com/doodlesbykumbi/acts/pkg/model"
	"github.com/doodlesbykumbi/acts/pkg/server/store"
)

var (
	_ store.PeopleStore = (*MockPeopleStore)(nil)
	_ store.DutiesStore = (*MockDutiesStore)(nil)
	_ store.HealthStore = (*MockHealthStore)(nil)
)

// MockPeopleStore implements store.PeopleStore for testing using testify/mock
type MockPeopleStore struct {
	mock.Mock
}

func NewMockPeopleStore() *MockPeopleStore {
	return &MockPeopleStore{}
}

func (m *MockPeopleStore) ListPeople(ctx context.Context, limit int) ([]model.PersonAstronaut, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PersonAstronaut), args.Error(1)
}

func (m *MockPeopleStore) FetchPerson(ctx context.Context, name string) (*model.PersonAstronaut, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PersonAstronaut), args.Error(1)
}

func (m *MockPeopleStore) CreatePerson(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPeopleStore) UpdatePerson(ctx context.Context, name string, u store.PersonUpdate) (int64, error) {
	args := m.Called(ctx, name, u)
	return args.Get(0).(int64), args.Error(1)
}

// MockDutiesStore implements store.DutiesStore for testing using testify/mock
type MockDutiesStore struct {
	mock.Mock
}

func NewMockDutiesStore() *MockDutiesStore {
	return &MockDutiesStore{}
}

func (m *MockDutiesStore) ListDuties(ctx context.Context, personID int64) ([]model.AstronautDuty, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AstronautDuty), args.Error(1)
}

func (m *MockDutiesStore) AssignDuty(ctx context.Context, name string, a duty.Assignment) (*duty.Transition, error) {
	args := m.Called(ctx, name, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*duty.Transition), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
