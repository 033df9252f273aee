package order

import (
	"context"
	"testing"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/address"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateOrder(ctx context.Context, userID uint, input CreateOrderInput) (uint, error) {
	args := m.Called(ctx, userID, input)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockRepository) GetAggregate(ctx context.Context, orderID uint) (*OrderAggregate, error) {
	args := m.Called(ctx, orderID)
	if agg, ok := args.Get(0).(*OrderAggregate); ok {
		return agg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter *OrderFilterInput, limit, page int32) ([]*Order, error) {
	args := m.Called(ctx, filter, limit, page)
	if orders, ok := args.Get(0).([]*Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) TransitionStatus(ctx context.Context, orderID uint, target OrderStatus) error {
	args := m.Called(ctx, orderID, target)
	return args.Error(0)
}

func (m *MockRepository) CancelOrder(ctx context.Context, orderID uint) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func customerCtx(userID uint) context.Context {
	return utils.SetActorContext(context.Background(), userID, utils.RoleCustomer, nil, nil)
}

func validInput() CreateOrderInput {
	return CreateOrderInput{
		BranchID: 3,
		Items:    []CreateOrderLine{{MenuItemID: 10, Quantity: 2}},
		DeliveryAddress: address.Address{
			Street:     "12 Harbor Lane",
			City:       "Portville",
			State:      "CA",
			PostalCode: "90210",
		},
	}
}

func TestPlace_Success(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := customerCtx(7)

	input := validInput()
	agg := &OrderAggregate{ID: 42, UserID: 7, BranchID: 3, Status: StatusPending, TotalCents: 1000}

	repo.On("CreateOrder", ctx, uint(7), input).Return(uint(42), nil)
	repo.On("GetAggregate", ctx, uint(42)).Return(agg, nil)

	got, err := svc.Place(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, uint(42), got.ID)
	assert.Equal(t, StatusPending, got.Status)
	repo.AssertExpectations(t)
}

func TestPlace_EmptyOrder(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	input := validInput()
	input.Items = nil

	_, err := svc.Place(customerCtx(7), input)

	assert.ErrorIs(t, err, ErrEmptyOrder)
	repo.AssertNotCalled(t, "CreateOrder")
}

func TestPlace_NonPositiveQuantity(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	input := validInput()
	input.Items = []CreateOrderLine{{MenuItemID: 10, Quantity: 0}}

	_, err := svc.Place(customerCtx(7), input)

	assert.ErrorIs(t, err, ErrInvalidQuantity)
	repo.AssertNotCalled(t, "CreateOrder")
}

func TestPlace_InvalidAddress(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	input := validInput()
	input.DeliveryAddress.Street = ""

	_, err := svc.Place(customerCtx(7), input)

	assert.ErrorIs(t, err, address.ErrInvalidAddress)
	repo.AssertNotCalled(t, "CreateOrder")
}

func TestPlace_Unauthenticated(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	_, err := svc.Place(context.Background(), validInput())

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGet_CustomerCannotReadForeignOrder(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := customerCtx(7)

	repo.On("GetAggregate", ctx, uint(42)).
		Return(&OrderAggregate{ID: 42, UserID: 99}, nil)

	_, err := svc.Get(ctx, 42)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGet_BranchManagerScopedToOwnBranch(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := utils.SetActorContext(context.Background(), 3, utils.RoleBranchManager, utils.UintPtr(5), nil)

	repo.On("GetAggregate", ctx, uint(42)).
		Return(&OrderAggregate{ID: 42, UserID: 7, BranchID: 8}, nil)

	_, err := svc.Get(ctx, 42)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	_, err := svc.UpdateStatus(customerCtx(7), 42, OrderStatus("shipped"))

	assert.ErrorIs(t, err, ErrUnknownStatus)
	repo.AssertNotCalled(t, "TransitionStatus")
}

func TestUpdateStatus_Staff(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := utils.SetActorContext(context.Background(), 2, utils.RoleBranchManager, utils.UintPtr(3), nil)

	agg := &OrderAggregate{ID: 42, UserID: 7, BranchID: 3, Status: StatusPending}
	updated := &OrderAggregate{ID: 42, UserID: 7, BranchID: 3, Status: StatusConfirmed}

	repo.On("GetAggregate", ctx, uint(42)).Return(agg, nil).Once()
	repo.On("TransitionStatus", ctx, uint(42), StatusConfirmed).Return(nil)
	repo.On("GetAggregate", ctx, uint(42)).Return(updated, nil).Once()

	got, err := svc.UpdateStatus(ctx, 42, StatusConfirmed)

	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, got.Status)
	repo.AssertExpectations(t)
}

func TestCancel_CustomerNonTerminalOrder(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := customerCtx(7)

	for _, status := range []OrderStatus{StatusConfirmed, StatusPreparing, StatusReady} {
		agg := &OrderAggregate{ID: 42, UserID: 7, Status: status}
		cancelled := &OrderAggregate{ID: 42, UserID: 7, Status: StatusCancelled}

		repo.On("GetAggregate", ctx, uint(42)).Return(agg, nil).Once()
		repo.On("CancelOrder", ctx, uint(42)).Return(nil).Once()
		repo.On("GetAggregate", ctx, uint(42)).Return(cancelled, nil).Once()

		got, err := svc.Cancel(ctx, 42)

		require.NoError(t, err, string(status))
		assert.Equal(t, StatusCancelled, got.Status)
	}
	repo.AssertExpectations(t)
}

func TestCancel_CustomerCannotCancelForeignOrder(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := customerCtx(7)

	repo.On("GetAggregate", ctx, uint(42)).
		Return(&OrderAggregate{ID: 42, UserID: 99, Status: StatusConfirmed}, nil)

	_, err := svc.Cancel(ctx, 42)

	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "CancelOrder")
}

func TestCancel_CustomerPendingOrder(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := customerCtx(7)

	agg := &OrderAggregate{ID: 42, UserID: 7, Status: StatusPending}
	cancelled := &OrderAggregate{ID: 42, UserID: 7, Status: StatusCancelled}

	repo.On("GetAggregate", ctx, uint(42)).Return(agg, nil).Once()
	repo.On("CancelOrder", ctx, uint(42)).Return(nil)
	repo.On("GetAggregate", ctx, uint(42)).Return(cancelled, nil).Once()

	got, err := svc.Cancel(ctx, 42)

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	repo.AssertExpectations(t)
}

func TestCancel_AdminCancelsLateOrder(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := utils.SetActorContext(context.Background(), 1, utils.RoleAdmin, nil, nil)

	agg := &OrderAggregate{ID: 42, UserID: 7, Status: StatusOutForDelivery}
	cancelled := &OrderAggregate{ID: 42, UserID: 7, Status: StatusCancelled}

	repo.On("GetAggregate", ctx, uint(42)).Return(agg, nil).Once()
	repo.On("CancelOrder", ctx, uint(42)).Return(nil)
	repo.On("GetAggregate", ctx, uint(42)).Return(cancelled, nil).Once()

	got, err := svc.Cancel(ctx, 42)

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
}

func TestList_RejectsUnknownStatusFilter(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	bad := OrderStatus("shipped")
	_, err := svc.List(customerCtx(7), &OrderFilterInput{Status: &bad}, 20, 1)

	assert.ErrorIs(t, err, ErrUnknownStatus)
	repo.AssertNotCalled(t, "List")
}
