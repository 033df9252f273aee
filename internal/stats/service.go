package stats

import (
	"context"
	"time"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/order"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/utils"
)

type Service interface {
	Dashboard(ctx context.Context, from, to time.Time) (*Dashboard, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Dashboard is admin-only. An empty window defaults to the last 30 days.
func (s *service) Dashboard(ctx context.Context, from, to time.Time) (*Dashboard, error) {
	if utils.GetUserRoleFromContext(ctx) != utils.RoleAdmin {
		return nil, order.ErrForbidden
	}

	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}

	ordersBy, err := s.repo.OrdersByStatus(ctx, from, to)
	if err != nil {
		return nil, err
	}
	revenue, err := s.repo.RevenueByBranch(ctx, from, to)
	if err != nil {
		return nil, err
	}
	riders, err := s.repo.RiderSummaries(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		From:          from,
		To:            to,
		OrdersBy:      ordersBy,
		BranchRevenue: revenue,
		Riders:        riders,
	}, nil
}
