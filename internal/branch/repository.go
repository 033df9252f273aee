package branch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, id uint) (*Branch, error)
	List(ctx context.Context, onlyActive bool) ([]*Branch, error)
	Create(ctx context.Context, input CreateBranchInput) (*Branch, error)
	Update(ctx context.Context, id uint, input UpdateBranchInput) (*Branch, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Branch, error) {
	var b Branch
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, address, city, latitude, longitude, is_active, created_at
		FROM branches
		WHERE id = $1
	`, id).
		Scan(&b.ID, &b.Name, &b.Address, &b.City, &b.Latitude, &b.Longitude, &b.IsActive, &b.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBranchNotFound
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) List(ctx context.Context, onlyActive bool) ([]*Branch, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	query := `
		SELECT id, name, address, city, latitude, longitude, is_active, created_at
		FROM branches
	`
	if onlyActive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query branches", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var branches []*Branch
	for rows.Next() {
		var b Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.City, &b.Latitude, &b.Longitude, &b.IsActive, &b.CreatedAt); err != nil {
			log.Error("failed to scan branch row", zap.Error(err))
			return nil, err
		}
		branches = append(branches, &b)
	}

	return branches, rows.Err()
}

func (r *repository) Create(ctx context.Context, input CreateBranchInput) (*Branch, error) {
	var b Branch
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO branches (name, address, city, latitude, longitude, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING id, name, address, city, latitude, longitude, is_active, created_at
	`, input.Name, input.Address, input.City, input.Latitude, input.Longitude).
		Scan(&b.ID, &b.Name, &b.Address, &b.City, &b.Latitude, &b.Longitude, &b.IsActive, &b.CreatedAt)

	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) Update(ctx context.Context, id uint, input UpdateBranchInput) (*Branch, error) {
	query := `UPDATE branches SET `
	args := []any{}
	argIndex := 1

	if input.Name != nil {
		query += fmt.Sprintf("name = $%d, ", argIndex)
		args = append(args, *input.Name)
		argIndex++
	}
	if input.Address != nil {
		query += fmt.Sprintf("address = $%d, ", argIndex)
		args = append(args, *input.Address)
		argIndex++
	}
	if input.City != nil {
		query += fmt.Sprintf("city = $%d, ", argIndex)
		args = append(args, *input.City)
		argIndex++
	}
	if input.IsActive != nil {
		query += fmt.Sprintf("is_active = $%d, ", argIndex)
		args = append(args, *input.IsActive)
		argIndex++
	}

	if len(args) == 0 {
		return r.GetByID(ctx, id)
	}

	query = query[:len(query)-2]
	query += fmt.Sprintf(` WHERE id = $%d
		RETURNING id, name, address, city, latitude, longitude, is_active, created_at`, argIndex)
	args = append(args, id)

	var b Branch
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&b.ID, &b.Name, &b.Address, &b.City, &b.Latitude, &b.Longitude, &b.IsActive, &b.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBranchNotFound
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}
