package rider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Rider), args.Error(1)
}

func (m *MockRepository) ListByBranch(ctx context.Context, branchID uint) ([]*Rider, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Rider), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, input CreateRiderInput) (*Rider, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Rider), args.Error(1)
}

func (m *MockRepository) SetStatus(ctx context.Context, id uint, from, to RiderStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockRepository) UpsertLocation(ctx context.Context, riderID uint, lat, lon float64) error {
	args := m.Called(ctx, riderID, lat, lon)
	return args.Error(0)
}

func (m *MockRepository) GetLocation(ctx context.Context, riderID uint) (*Location, error) {
	args := m.Called(ctx, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Location), args.Error(1)
}

func (m *MockRepository) GetLocationByOrder(ctx context.Context, orderID uint) (*Location, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Location), args.Error(1)
}

func TestService_RecordLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid coordinates", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("UpsertLocation", ctx, uint(5), 33.68, 73.04).Return(nil)

		assert.NoError(t, svc.RecordLocation(ctx, 5, 33.68, 73.04))
		repo.AssertExpectations(t)
	})

	t.Run("Rejects out-of-range latitude", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		err := svc.RecordLocation(ctx, 5, 95.0, 73.04)
		assert.ErrorIs(t, err, ErrInvalidCoordinates)
		repo.AssertNotCalled(t, "UpsertLocation")
	})

	t.Run("Rejects out-of-range longitude", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		err := svc.RecordLocation(ctx, 5, 33.68, 181.0)
		assert.ErrorIs(t, err, ErrInvalidCoordinates)
	})
}

func TestService_SetOnShift(t *testing.T) {
	ctx := context.Background()

	t.Run("Going on shift", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("SetStatus", ctx, uint(5), StatusInactive, StatusActive).Return(nil)
		assert.NoError(t, svc.SetOnShift(ctx, 5, true))
		repo.AssertExpectations(t)
	})

	t.Run("Going off shift", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("SetStatus", ctx, uint(5), StatusActive, StatusInactive).Return(nil)
		assert.NoError(t, svc.SetOnShift(ctx, 5, false))
	})

	t.Run("Busy rider cannot go off shift", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("SetStatus", ctx, uint(5), StatusActive, StatusInactive).Return(ErrStatusConflict)
		assert.ErrorIs(t, svc.SetOnShift(ctx, 5, false), ErrStatusConflict)
	})
}
