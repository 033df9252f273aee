package branch

import (
	"context"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/logger"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Get(ctx context.Context, id uint) (*Branch, error)
	List(ctx context.Context) ([]*Branch, error)
	Create(ctx context.Context, input CreateBranchInput) (*Branch, error)
	Update(ctx context.Context, id uint, input UpdateBranchInput) (*Branch, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, id uint) (*Branch, error) {
	return s.repo.GetByID(ctx, id)
}

// List hides inactive branches from non-staff callers.
func (s *service) List(ctx context.Context) ([]*Branch, error) {
	role := utils.GetUserRoleFromContext(ctx)
	onlyActive := !utils.IsStaff(role)
	return s.repo.List(ctx, onlyActive)
}

func (s *service) Create(ctx context.Context, input CreateBranchInput) (*Branch, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("name", input.Name),
	)

	b, err := s.repo.Create(ctx, input)
	if err != nil {
		log.Error("failed to create branch", zap.Error(err))
		return nil, err
	}

	log.Info("branch created", zap.Uint("branch_id", b.ID))
	return b, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateBranchInput) (*Branch, error) {
	return s.repo.Update(ctx, id, input)
}
