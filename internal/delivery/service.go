package delivery

import (
	"context"
	"fmt"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/logger"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/order"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Assign(ctx context.Context, orderID, riderID uint) (*Assignment, error)
	Current(ctx context.Context) (*Assignment, error)
	ReportStatus(ctx context.Context, orderID uint, target AssignmentStatus) (*Assignment, error)
	Rate(ctx context.Context, orderID uint, input RateInput) (*Rating, error)
}

type service struct {
	repo      Repository
	orderRepo order.Repository
}

func NewService(repo Repository, orderRepo order.Repository) Service {
	return &service{repo: repo, orderRepo: orderRepo}
}

// Assign is staff-only; branch managers can only dispatch for orders of
// their own branch.
func (s *service) Assign(ctx context.Context, orderID, riderID uint) (*Assignment, error) {
	role := utils.GetUserRoleFromContext(ctx)
	if !utils.IsStaff(role) {
		return nil, order.ErrForbidden
	}

	if role == utils.RoleBranchManager {
		agg, err := s.orderRepo.GetAggregate(ctx, orderID)
		if err != nil {
			return nil, err
		}
		branchID, ok := utils.GetBranchIDFromContext(ctx)
		if !ok || branchID != agg.BranchID {
			return nil, order.ErrForbidden
		}
	}

	return s.repo.Assign(ctx, orderID, riderID)
}

// Current returns the calling rider's active delivery, if any.
func (s *service) Current(ctx context.Context) (*Assignment, error) {
	riderID, ok := utils.GetRiderIDFromContext(ctx)
	if !ok {
		return nil, order.ErrForbidden
	}
	return s.repo.GetActiveByRider(ctx, riderID)
}

// ReportStatus handles the rider's progress reports on their own
// assignment. picked_up advances the sub-status only; delivered closes
// the assignment, the order and frees the rider in one step.
func (s *service) ReportStatus(ctx context.Context, orderID uint, target AssignmentStatus) (*Assignment, error) {
	riderID, ok := utils.GetRiderIDFromContext(ctx)
	if !ok {
		return nil, order.ErrForbidden
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ReportStatus"),
		zap.Uint("order_id", orderID),
		zap.Uint("rider_id", riderID),
		zap.String("target", string(target)),
	)

	a, err := s.repo.GetActiveByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if a.RiderID != riderID {
		log.Warn("rider reported on a delivery that is not theirs")
		return nil, order.ErrForbidden
	}

	switch target {
	case AssignmentPickedUp:
		if a.Status != AssignmentAssigned {
			return nil, fmt.Errorf("%w: %s -> %s", order.ErrInvalidTransition, a.Status, target)
		}
		if err := s.repo.MarkPickedUp(ctx, a.ID); err != nil {
			return nil, err
		}
	case AssignmentDelivered:
		if a.Status != AssignmentPickedUp {
			return nil, fmt.Errorf("%w: %s -> %s", order.ErrInvalidTransition, a.Status, target)
		}
		if err := s.repo.Complete(ctx, a.ID); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSubStatus, target)
	}

	a.Status = target
	log.Info("assignment status reported")
	return a, nil
}

// Rate records the customer's delivery score for their own delivered
// order.
func (s *service) Rate(ctx context.Context, orderID uint, input RateInput) (*Rating, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, order.ErrForbidden
	}
	if input.Score < 1 || input.Score > 5 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRating, input.Score)
	}
	return s.repo.InsertRating(ctx, orderID, userID, input.Score, input.Comment)
}
