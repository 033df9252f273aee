package menu

import (
	"context"
	"fmt"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	ResolvePrice(ctx context.Context, branchID, menuItemID uint) (int64, error)
	ListForBranch(ctx context.Context, branchID uint, category *string) ([]*BranchMenuItem, error)
	CreateItem(ctx context.Context, input CreateItemInput) (*MenuItem, error)
	UpdateItem(ctx context.Context, id uint, input UpdateItemInput) (*MenuItem, error)
	SetBranchPrice(ctx context.Context, branchID uint, input BranchPriceInput) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ResolvePrice(ctx context.Context, branchID, menuItemID uint) (int64, error) {
	return s.repo.ResolvePrice(ctx, branchID, menuItemID)
}

func (s *service) ListForBranch(ctx context.Context, branchID uint, category *string) ([]*BranchMenuItem, error) {
	return s.repo.ListForBranch(ctx, branchID, category)
}

func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateItem"),
		zap.String("name", input.Name),
	)

	if input.BasePriceCents <= 0 {
		return nil, ErrInvalidPrice
	}

	it, err := s.repo.CreateItem(ctx, input)
	if err != nil {
		log.Error("failed to create menu item", zap.Error(err))
		return nil, err
	}

	log.Info("menu item created", zap.Uint("menu_item_id", it.ID))
	return it, nil
}

func (s *service) UpdateItem(ctx context.Context, id uint, input UpdateItemInput) (*MenuItem, error) {
	if input.BasePriceCents != nil && *input.BasePriceCents <= 0 {
		return nil, ErrInvalidPrice
	}
	return s.repo.UpdateItem(ctx, id, input)
}

func (s *service) SetBranchPrice(ctx context.Context, branchID uint, input BranchPriceInput) error {
	if input.PriceCents != nil && *input.PriceCents <= 0 {
		return fmt.Errorf("%w: item %d", ErrInvalidPrice, input.MenuItemID)
	}
	return s.repo.UpsertBranchPrice(ctx, branchID, input)
}
