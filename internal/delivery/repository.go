package delivery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/logger"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/order"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/rider"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Assign(ctx context.Context, orderID, riderID uint) (*Assignment, error)
	GetActiveByOrder(ctx context.Context, orderID uint) (*Assignment, error)
	GetActiveByRider(ctx context.Context, riderID uint) (*Assignment, error)
	MarkPickedUp(ctx context.Context, assignmentID string) error
	Complete(ctx context.Context, assignmentID string) error
	InsertRating(ctx context.Context, orderID, userID uint, score int, comment *string) (*Rating, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const assignmentColumns = `id, order_id, rider_id, status, assigned_at, picked_up_at, completed_at`

func scanAssignment(row interface{ Scan(...any) error }) (*Assignment, error) {
	var a Assignment
	err := row.Scan(&a.ID, &a.OrderID, &a.RiderID, &a.Status, &a.AssignedAt, &a.PickedUpAt, &a.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Assign dispatches a rider to a ready order. The whole handoff happens
// in one transaction: the order moves to out_for_delivery, the rider
// becomes busy and the assignment row is created, or none of it happens.
func (r *repository) Assign(ctx context.Context, orderID, riderID uint) (*Assignment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Assign"),
		zap.Uint("order_id", orderID),
		zap.Uint("rider_id", riderID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var orderStatus order.OrderStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID,
	).Scan(&orderStatus)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: order %d", order.ErrOrderNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}

	if orderStatus != order.StatusReady {
		log.Warn("order not assignable", zap.String("status", string(orderStatus)))
		return nil, fmt.Errorf("%w: status %s", ErrNotAssignable, orderStatus)
	}

	var hasActive bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM order_assignments
			WHERE order_id = $1 AND status IN ('assigned', 'picked_up')
		)
	`, orderID).Scan(&hasActive)
	if err != nil {
		return nil, err
	}
	if hasActive {
		return nil, ErrAlreadyAssigned
	}

	var riderStatus rider.RiderStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM riders WHERE id = $1 FOR UPDATE`, riderID,
	).Scan(&riderStatus)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: rider %d", rider.ErrRiderNotFound, riderID)
	}
	if err != nil {
		return nil, err
	}

	switch riderStatus {
	case rider.StatusActive:
	case rider.StatusBusy:
		return nil, fmt.Errorf("%w: rider %d", rider.ErrRiderBusy, riderID)
	default:
		return nil, fmt.Errorf("%w: rider %d", rider.ErrRiderInactive, riderID)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE riders SET status = 'busy' WHERE id = $1 AND status = 'active'
	`, riderID)
	if err != nil {
		return nil, err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, fmt.Errorf("%w: rider %d", rider.ErrStatusConflict, riderID)
	}

	assignmentID := uuid.NewString()
	a, err := scanAssignment(tx.QueryRowContext(ctx, `
		INSERT INTO order_assignments (id, order_id, rider_id, status, assigned_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING `+assignmentColumns+`
	`, assignmentID, orderID, riderID, AssignmentAssigned))
	if err != nil {
		log.Error("failed to insert assignment", zap.Error(err))
		return nil, err
	}

	res, err = tx.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, order.StatusOutForDelivery, orderID, order.StatusReady)
	if err != nil {
		return nil, err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, order.ErrTransitionConflict
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	committed = true
	log.Info("rider assigned", zap.String("assignment_id", a.ID))
	return a, nil
}

func (r *repository) GetActiveByOrder(ctx context.Context, orderID uint) (*Assignment, error) {
	a, err := scanAssignment(r.db.QueryRowContext(ctx, `
		SELECT `+assignmentColumns+` FROM order_assignments
		WHERE order_id = $1 AND status IN ('assigned', 'picked_up')
		ORDER BY assigned_at DESC
		LIMIT 1
	`, orderID))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: order %d", ErrNotAssigned, orderID)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *repository) GetActiveByRider(ctx context.Context, riderID uint) (*Assignment, error) {
	a, err := scanAssignment(r.db.QueryRowContext(ctx, `
		SELECT `+assignmentColumns+` FROM order_assignments
		WHERE rider_id = $1 AND status IN ('assigned', 'picked_up')
		ORDER BY assigned_at DESC
		LIMIT 1
	`, riderID))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotAssigned
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *repository) MarkPickedUp(ctx context.Context, assignmentID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE order_assignments SET status = 'picked_up', picked_up_at = NOW()
		WHERE id = $1 AND status = 'assigned'
	`, assignmentID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotAssigned
	}
	return nil
}

// Complete finishes the delivery: assignment, order and rider all flip
// in the same transaction so a crash cannot leave a delivered order with
// a rider stuck on busy.
func (r *repository) Complete(ctx context.Context, assignmentID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Complete"),
		zap.String("assignment_id", assignmentID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var orderID, riderID uint
	err = tx.QueryRowContext(ctx, `
		UPDATE order_assignments SET status = 'delivered', completed_at = NOW()
		WHERE id = $1 AND status = 'picked_up'
		RETURNING order_id, rider_id
	`, assignmentID).Scan(&orderID, &riderID)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotAssigned
	}
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, order.StatusDelivered, orderID, order.StatusOutForDelivery)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return order.ErrTransitionConflict
	}

	res, err = tx.ExecContext(ctx, `
		UPDATE riders SET status = 'active' WHERE id = $1 AND status = 'busy'
	`, riderID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%w: rider %d", rider.ErrStatusConflict, riderID)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	committed = true
	log.Info("delivery completed", zap.Uint("order_id", orderID), zap.Uint("rider_id", riderID))
	return nil
}

// InsertRating records the customer's score for a delivered order. One
// rating per order, enforced by the unique constraint on order_id.
func (r *repository) InsertRating(ctx context.Context, orderID, userID uint, score int, comment *string) (*Rating, error) {
	var ownerID uint
	var status order.OrderStatus
	var riderID *uint

	err := r.db.QueryRowContext(ctx, `
		SELECT o.user_id, o.status, a.rider_id
		FROM orders o
		LEFT JOIN order_assignments a ON a.order_id = o.id AND a.status = 'delivered'
		WHERE o.id = $1
	`, orderID).Scan(&ownerID, &status, &riderID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: order %d", order.ErrOrderNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}

	if ownerID != userID {
		return nil, order.ErrForbidden
	}
	if status != order.StatusDelivered || riderID == nil {
		return nil, ErrNotDelivered
	}

	var rating Rating
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO delivery_ratings (order_id, user_id, rider_id, score, comment)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (order_id) DO NOTHING
		RETURNING id, order_id, user_id, rider_id, score, comment, created_at
	`, orderID, userID, *riderID, score, comment).
		Scan(&rating.ID, &rating.OrderID, &rating.UserID, &rating.RiderID,
			&rating.Score, &rating.Comment, &rating.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: order %d", ErrAlreadyRated, orderID)
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}
