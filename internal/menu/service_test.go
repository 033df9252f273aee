package menu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ResolvePrice(ctx context.Context, branchID, menuItemID uint) (int64, error) {
	args := m.Called(ctx, branchID, menuItemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ListForBranch(ctx context.Context, branchID uint, category *string) ([]*BranchMenuItem, error) {
	args := m.Called(ctx, branchID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*BranchMenuItem), args.Error(1)
}

func (m *MockRepository) GetItem(ctx context.Context, id uint) (*MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MenuItem), args.Error(1)
}

func (m *MockRepository) CreateItem(ctx context.Context, input CreateItemInput) (*MenuItem, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MenuItem), args.Error(1)
}

func (m *MockRepository) UpdateItem(ctx context.Context, id uint, input UpdateItemInput) (*MenuItem, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MenuItem), args.Error(1)
}

func (m *MockRepository) UpsertBranchPrice(ctx context.Context, branchID uint, input BranchPriceInput) error {
	args := m.Called(ctx, branchID, input)
	return args.Error(0)
}

func TestService_CreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects non-positive price", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.CreateItem(ctx, CreateItemInput{Name: "Free Lunch", Category: "deals", BasePriceCents: 0})
		assert.ErrorIs(t, err, ErrInvalidPrice)
		repo.AssertNotCalled(t, "CreateItem")
	})

	t.Run("Delegates to repo", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		input := CreateItemInput{Name: "Zinger", Category: "burgers", BasePriceCents: 500}
		repo.On("CreateItem", ctx, input).Return(&MenuItem{ID: 1, Name: "Zinger"}, nil)

		it, err := svc.CreateItem(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, uint(1), it.ID)
		repo.AssertExpectations(t)
	})
}

func TestService_UpdateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects non-positive price", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		bad := int64(-5)
		_, err := svc.UpdateItem(ctx, 1, UpdateItemInput{BasePriceCents: &bad})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestService_SetBranchPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects non-positive override", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		bad := int64(0)
		err := svc.SetBranchPrice(ctx, 1, BranchPriceInput{MenuItemID: 10, PriceCents: &bad})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("Nil override means base price, allowed", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		input := BranchPriceInput{MenuItemID: 10, IsAvailable: true}
		repo.On("UpsertBranchPrice", ctx, uint(1), input).Return(nil)

		assert.NoError(t, svc.SetBranchPrice(ctx, 1, input))
		repo.AssertExpectations(t)
	})
}
