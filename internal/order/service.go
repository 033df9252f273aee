package order

import (
	"context"
	"fmt"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/logger"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Place(ctx context.Context, input CreateOrderInput) (*OrderAggregate, error)
	Get(ctx context.Context, orderID uint) (*OrderAggregate, error)
	List(ctx context.Context, filter *OrderFilterInput, limit, page int32) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID uint, target OrderStatus) (*OrderAggregate, error)
	Cancel(ctx context.Context, orderID uint) (*OrderAggregate, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Place(ctx context.Context, input CreateOrderInput) (*OrderAggregate, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Place"),
		zap.Uint("user_id", userID),
	)

	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item %d", ErrInvalidQuantity, item.MenuItemID)
		}
	}
	if err := input.DeliveryAddress.Validate(); err != nil {
		return nil, err
	}

	orderID, err := s.repo.CreateOrder(ctx, userID, input)
	if err != nil {
		log.Warn("order creation failed", zap.Error(err))
		return nil, err
	}

	return s.repo.GetAggregate(ctx, orderID)
}

// Get enforces ownership: customers can only read their own orders,
// branch managers only orders of their branch.
func (s *service) Get(ctx context.Context, orderID uint) (*OrderAggregate, error) {
	agg, err := s.repo.GetAggregate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, agg); err != nil {
		return nil, err
	}
	return agg, nil
}

func (s *service) List(ctx context.Context, filter *OrderFilterInput, limit, page int32) ([]*Order, error) {
	if filter != nil && filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStatus, *filter.Status)
	}
	return s.repo.List(ctx, filter, limit, page)
}

// UpdateStatus drives the branch-side lifecycle. Customers never reach
// this path; cancellation goes through Cancel.
func (s *service) UpdateStatus(ctx context.Context, orderID uint, target OrderStatus) (*OrderAggregate, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStatus, target)
	}
	if target == StatusCancelled {
		return s.Cancel(ctx, orderID)
	}

	agg, err := s.repo.GetAggregate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, agg); err != nil {
		return nil, err
	}

	if err := s.repo.TransitionStatus(ctx, orderID, target); err != nil {
		return nil, err
	}
	return s.repo.GetAggregate(ctx, orderID)
}

// Cancel is allowed from any non-terminal status, for staff and for the
// owning customer alike; ownership is what authorize checks.
func (s *service) Cancel(ctx context.Context, orderID uint) (*OrderAggregate, error) {
	agg, err := s.repo.GetAggregate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, agg); err != nil {
		return nil, err
	}

	if err := s.repo.CancelOrder(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repo.GetAggregate(ctx, orderID)
}

func (s *service) authorize(ctx context.Context, agg *OrderAggregate) error {
	role := utils.GetUserRoleFromContext(ctx)

	switch role {
	case utils.RoleAdmin:
		return nil
	case utils.RoleBranchManager:
		branchID, ok := utils.GetBranchIDFromContext(ctx)
		if !ok || branchID != agg.BranchID {
			return ErrForbidden
		}
		return nil
	case utils.RoleRider:
		riderID, ok := utils.GetRiderIDFromContext(ctx)
		if !ok || agg.Rider == nil || agg.Rider.RiderID != riderID {
			return ErrForbidden
		}
		return nil
	default:
		userID, ok := utils.GetUserIDFromContext(ctx)
		if !ok || userID != agg.UserID {
			return ErrForbidden
		}
		return nil
	}
}
