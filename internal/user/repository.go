package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, name, email, password, phone, role string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id uint) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, email, password, phone, role string) (User, error) {
	log := logger.FromCtx(ctx)

	var u User
	var phoneArg any
	if phone != "" {
		phoneArg = phone
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password_hash, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, password_hash, phone, role, created_at
	`, name, email, password, phoneArg, role).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Phone, &u.Role, &u.CreatedAt)

	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("email", email),
			zap.Error(err),
		)
	}

	return u, err
}

// FindByEmail also resolves the rider and branch bindings used in JWT claims.
func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT u.id, u.name, u.email, u.password_hash, u.phone, u.role, u.created_at,
		       r.id, COALESCE(u.branch_id, r.branch_id)
		FROM users u
		LEFT JOIN riders r ON r.user_id = u.id
		WHERE u.email = $1
	`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Phone, &u.Role, &u.CreatedAt,
			&u.RiderID, &u.BranchID)

	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}

	return u, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT u.id, u.name, u.email, u.password_hash, u.phone, u.role, u.created_at,
		       r.id, COALESCE(u.branch_id, r.branch_id)
		FROM users u
		LEFT JOIN riders r ON r.user_id = u.id
		WHERE u.id = $1
	`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Phone, &u.Role, &u.CreatedAt,
			&u.RiderID, &u.BranchID)

	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}

	return u, err
}
