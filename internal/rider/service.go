package rider

import (
	"context"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Get(ctx context.Context, id uint) (*Rider, error)
	ListByBranch(ctx context.Context, branchID uint) ([]*Rider, error)
	Create(ctx context.Context, input CreateRiderInput) (*Rider, error)
	SetOnShift(ctx context.Context, id uint, onShift bool) error
	RecordLocation(ctx context.Context, riderID uint, lat, lon float64) error
	GetLocation(ctx context.Context, riderID uint) (*Location, error)
	GetLocationByOrder(ctx context.Context, orderID uint) (*Location, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, id uint) (*Rider, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByBranch(ctx context.Context, branchID uint) ([]*Rider, error) {
	return s.repo.ListByBranch(ctx, branchID)
}

func (s *service) Create(ctx context.Context, input CreateRiderInput) (*Rider, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.Uint("user_id", input.UserID),
		zap.Uint("branch_id", input.BranchID),
	)

	rd, err := s.repo.Create(ctx, input)
	if err != nil {
		log.Error("failed to create rider", zap.Error(err))
		return nil, err
	}

	log.Info("rider created", zap.Uint("rider_id", rd.ID))
	return rd, nil
}

// SetOnShift flips between active and inactive. A busy rider must finish
// the delivery first; the guarded update surfaces that as a conflict.
func (s *service) SetOnShift(ctx context.Context, id uint, onShift bool) error {
	if onShift {
		return s.repo.SetStatus(ctx, id, StatusInactive, StatusActive)
	}
	return s.repo.SetStatus(ctx, id, StatusActive, StatusInactive)
}

func (s *service) RecordLocation(ctx context.Context, riderID uint, lat, lon float64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RecordLocation"),
		zap.Uint("rider_id", riderID),
	)

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		log.Warn("rejected coordinates",
			zap.Float64("latitude", lat),
			zap.Float64("longitude", lon),
		)
		return ErrInvalidCoordinates
	}

	return s.repo.UpsertLocation(ctx, riderID, lat, lon)
}

func (s *service) GetLocation(ctx context.Context, riderID uint) (*Location, error) {
	return s.repo.GetLocation(ctx, riderID)
}

func (s *service) GetLocationByOrder(ctx context.Context, orderID uint) (*Location, error) {
	return s.repo.GetLocationByOrder(ctx, orderID)
}
