package menu

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ResolvePrice(ctx context.Context, branchID, menuItemID uint) (int64, error)
	ListForBranch(ctx context.Context, branchID uint, category *string) ([]*BranchMenuItem, error)
	GetItem(ctx context.Context, id uint) (*MenuItem, error)
	CreateItem(ctx context.Context, input CreateItemInput) (*MenuItem, error)
	UpdateItem(ctx context.Context, id uint, input UpdateItemInput) (*MenuItem, error)
	UpsertBranchPrice(ctx context.Context, branchID uint, input BranchPriceInput) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// ResolvePrice returns the effective price in cents for a menu item at a
// branch. No mapping row, an availability flag set to false, or an
// inactive item all mean the item cannot be ordered there.
func (r *repository) ResolvePrice(ctx context.Context, branchID, menuItemID uint) (int64, error) {
	var priceCents int64
	var available bool

	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(bmp.price_cents, mi.base_price_cents), bmp.is_available AND mi.is_active
		FROM branch_menu_prices bmp
		JOIN menu_items mi ON mi.id = bmp.menu_item_id
		WHERE bmp.branch_id = $1 AND bmp.menu_item_id = $2
	`, branchID, menuItemID).
		Scan(&priceCents, &available)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: item %d", ErrItemUnavailable, menuItemID)
	}
	if err != nil {
		return 0, err
	}

	if !available {
		return 0, fmt.Errorf("%w: item %d", ErrItemUnavailable, menuItemID)
	}

	return priceCents, nil
}

func (r *repository) ListForBranch(ctx context.Context, branchID uint, category *string) ([]*BranchMenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListForBranch"),
		zap.Uint("branch_id", branchID),
	)

	query := `
		SELECT mi.id, mi.name, mi.description, mi.category, mi.base_price_cents,
		       mi.image_url, mi.is_active,
		       COALESCE(bmp.price_cents, mi.base_price_cents), bmp.is_available
		FROM branch_menu_prices bmp
		JOIN menu_items mi ON mi.id = bmp.menu_item_id
		WHERE bmp.branch_id = $1 AND mi.is_active = true
	`
	args := []any{branchID}

	if category != nil && *category != "" {
		query += ` AND mi.category = $2`
		args = append(args, *category)
	}

	query += ` ORDER BY mi.category, mi.name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query branch menu", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*BranchMenuItem
	for rows.Next() {
		var it BranchMenuItem
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Description, &it.Category, &it.BasePriceCents,
			&it.ImageURL, &it.IsActive,
			&it.PriceCents, &it.IsAvailable,
		); err != nil {
			log.Error("failed to scan branch menu row", zap.Error(err))
			return nil, err
		}
		items = append(items, &it)
	}

	return items, rows.Err()
}

func (r *repository) GetItem(ctx context.Context, id uint) (*MenuItem, error) {
	var it MenuItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, category, base_price_cents, image_url, is_active
		FROM menu_items
		WHERE id = $1
	`, id).
		Scan(&it.ID, &it.Name, &it.Description, &it.Category, &it.BasePriceCents, &it.ImageURL, &it.IsActive)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	return &it, nil
}

func (r *repository) CreateItem(ctx context.Context, input CreateItemInput) (*MenuItem, error) {
	var it MenuItem
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO menu_items (name, description, category, base_price_cents, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING id, name, description, category, base_price_cents, image_url, is_active
	`, input.Name, input.Description, input.Category, input.BasePriceCents, input.ImageURL).
		Scan(&it.ID, &it.Name, &it.Description, &it.Category, &it.BasePriceCents, &it.ImageURL, &it.IsActive)

	if err != nil {
		return nil, err
	}

	return &it, nil
}

func (r *repository) UpdateItem(ctx context.Context, id uint, input UpdateItemInput) (*MenuItem, error) {
	query := `UPDATE menu_items SET `
	args := []any{}
	argIndex := 1

	appendSet := func(col string, val any) {
		query += fmt.Sprintf("%s = $%d, ", col, argIndex)
		args = append(args, val)
		argIndex++
	}

	if input.Name != nil {
		appendSet("name", *input.Name)
	}
	if input.Description != nil {
		appendSet("description", *input.Description)
	}
	if input.Category != nil {
		appendSet("category", *input.Category)
	}
	if input.BasePriceCents != nil {
		appendSet("base_price_cents", *input.BasePriceCents)
	}
	if input.ImageURL != nil {
		appendSet("image_url", *input.ImageURL)
	}
	if input.IsActive != nil {
		appendSet("is_active", *input.IsActive)
	}

	if len(args) == 0 {
		return r.GetItem(ctx, id)
	}

	query = query[:len(query)-2]
	query += fmt.Sprintf(` WHERE id = $%d
		RETURNING id, name, description, category, base_price_cents, image_url, is_active`, argIndex)
	args = append(args, id)

	var it MenuItem
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&it.ID, &it.Name, &it.Description, &it.Category, &it.BasePriceCents, &it.ImageURL, &it.IsActive)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	return &it, nil
}

func (r *repository) UpsertBranchPrice(ctx context.Context, branchID uint, input BranchPriceInput) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO branch_menu_prices (branch_id, menu_item_id, price_cents, is_available)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (branch_id, menu_item_id)
		DO UPDATE SET price_cents = EXCLUDED.price_cents, is_available = EXCLUDED.is_available
	`, branchID, input.MenuItemID, input.PriceCents, input.IsAvailable)

	return err
}
