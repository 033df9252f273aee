package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/logger"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/menu"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/utils"

	"go.uber.org/zap"
)

type Repository interface {
	CreateOrder(ctx context.Context, userID uint, input CreateOrderInput) (uint, error)
	GetAggregate(ctx context.Context, orderID uint) (*OrderAggregate, error)
	List(ctx context.Context, filter *OrderFilterInput, limit, page int32) ([]*Order, error)
	TransitionStatus(ctx context.Context, orderID uint, target OrderStatus) error
	CancelOrder(ctx context.Context, orderID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrder persists the order and its line items in one transaction.
// Prices are resolved inside the transaction against the branch menu; a
// single unavailable item aborts the whole order.
func (r *repository) CreateOrder(ctx context.Context, userID uint, input CreateOrderInput) (uint, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.Uint("user_id", userID),
		zap.Uint("branch_id", input.BranchID),
		zap.Int("item_count", len(input.Items)),
	)

	log.Debug("starting order creation transaction")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return 0, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			} else {
				log.Debug("transaction rolled back")
			}
		}
	}()

	// Resolve every line against the branch menu. All-or-nothing: the
	// first unavailable item aborts the order.
	type resolvedLine struct {
		CreateOrderLine
		priceCents int64
	}

	var lines []resolvedLine
	var totalCents int64

	for i, item := range input.Items {
		var priceCents int64
		var available bool

		err := tx.QueryRowContext(ctx, `
			SELECT COALESCE(bmp.price_cents, mi.base_price_cents), bmp.is_available AND mi.is_active
			FROM branch_menu_prices bmp
			JOIN menu_items mi ON mi.id = bmp.menu_item_id
			WHERE bmp.branch_id = $1 AND bmp.menu_item_id = $2
		`, input.BranchID, item.MenuItemID).
			Scan(&priceCents, &available)

		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("item not offered at branch",
				zap.Int("index", i),
				zap.Uint("menu_item_id", item.MenuItemID),
			)
			return 0, fmt.Errorf("%w: item %d", menu.ErrItemUnavailable, item.MenuItemID)
		}
		if err != nil {
			log.Error("failed to resolve item price", zap.Error(err))
			return 0, err
		}
		if !available {
			return 0, fmt.Errorf("%w: item %d", menu.ErrItemUnavailable, item.MenuItemID)
		}

		totalCents += priceCents * int64(item.Quantity)
		lines = append(lines, resolvedLine{CreateOrderLine: item, priceCents: priceCents})
	}

	var orderID uint
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, branch_id, status, total_cents, delivery_address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, userID, input.BranchID, StatusPending, totalCents, input.DeliveryAddress).
		Scan(&orderID)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return 0, err
	}

	for _, line := range lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, quantity, price_cents, special_instructions)
			VALUES ($1, $2, $3, $4, $5)
		`, orderID, line.MenuItemID, line.Quantity, line.priceCents, line.SpecialInstructions)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Uint("menu_item_id", line.MenuItemID),
				zap.Error(err),
			)
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return 0, err
	}

	committed = true
	log.Info("order created",
		zap.Uint("order_id", orderID),
		zap.Int64("total_cents", totalCents),
	)

	return orderID, nil
}

// GetAggregate builds the full denormalized view of one order. Rider
// fields come from the latest non-cancelled assignment via a lateral
// join and stay nil while no rider is attached.
func (r *repository) GetAggregate(ctx context.Context, orderID uint) (*OrderAggregate, error) {
	var agg OrderAggregate
	var riderID *uint
	var riderName, vehicleType, vehiclePlate, assignmentStatus *string
	var riderPhone *string
	var riderLat, riderLon *float64
	var riderLocAt *time.Time

	err := r.db.QueryRowContext(ctx, `
		SELECT o.id, o.user_id, u.name, o.branch_id, b.name, b.latitude, b.longitude,
		       o.status, o.total_cents, o.delivery_address, o.created_at, o.updated_at,
		       a.rider_id, a.status, ru.name, ru.phone, rd.vehicle_type, rd.vehicle_plate,
		       rl.latitude, rl.longitude, rl.updated_at
		FROM orders o
		JOIN users u ON u.id = o.user_id
		JOIN branches b ON b.id = o.branch_id
		LEFT JOIN LATERAL (
			SELECT oa.rider_id, oa.status, oa.assigned_at
			FROM order_assignments oa
			WHERE oa.order_id = o.id AND oa.status <> 'cancelled'
			ORDER BY oa.assigned_at DESC
			LIMIT 1
		) a ON true
		LEFT JOIN riders rd ON rd.id = a.rider_id
		LEFT JOIN users ru ON ru.id = rd.user_id
		LEFT JOIN rider_locations rl ON rl.rider_id = a.rider_id
		WHERE o.id = $1
	`, orderID).
		Scan(
			&agg.ID, &agg.UserID, &agg.CustomerName, &agg.BranchID, &agg.BranchName,
			&agg.BranchLatitude, &agg.BranchLongitude,
			&agg.Status, &agg.TotalCents, &agg.DeliveryAddress, &agg.CreatedAt, &agg.UpdatedAt,
			&riderID, &assignmentStatus, &riderName, &riderPhone, &vehicleType, &vehiclePlate,
			&riderLat, &riderLon, &riderLocAt,
		)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if riderID != nil {
		agg.Rider = &AggregateRider{
			RiderID:          *riderID,
			Name:             utils.PtrString(riderName),
			Phone:            riderPhone,
			VehicleType:      utils.PtrString(vehicleType),
			VehiclePlate:     utils.PtrString(vehiclePlate),
			AssignmentStatus: utils.PtrString(assignmentStatus),
			Latitude:         riderLat,
			Longitude:        riderLon,
			LocationAt:       riderLocAt,
		}
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.menu_item_id, mi.name, mi.description, mi.category,
		       oi.quantity, oi.price_cents, oi.special_instructions
		FROM order_items oi
		JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it AggregateItem
		if err := rows.Scan(
			&it.MenuItemID, &it.Name, &it.Description, &it.Category,
			&it.Quantity, &it.PriceCents, &it.SpecialInstructions,
		); err != nil {
			return nil, err
		}
		agg.Items = append(agg.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &agg, nil
}

// List applies actor scoping from the context: customers only see their
// own orders, branch managers their branch, admins everything.
func (r *repository) List(ctx context.Context, filter *OrderFilterInput, limit, page int32) ([]*Order, error) {
	userID, _ := utils.GetUserIDFromContext(ctx)
	role := utils.GetUserRoleFromContext(ctx)

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.String("role", role),
		zap.Int32("limit", limit),
		zap.Int32("page", page),
	)

	query := `
		SELECT o.id, o.user_id, o.branch_id, o.status, o.total_cents,
		       o.delivery_address, o.created_at, o.updated_at
		FROM orders o
		WHERE 1=1
	`
	args := []any{}
	argIndex := 1

	switch role {
	case utils.RoleAdmin:
		// no scoping
	case utils.RoleBranchManager:
		if branchID, ok := utils.GetBranchIDFromContext(ctx); ok {
			query += fmt.Sprintf(" AND o.branch_id = $%d", argIndex)
			args = append(args, branchID)
			argIndex++
		}
	default:
		query += fmt.Sprintf(" AND o.user_id = $%d", argIndex)
		args = append(args, userID)
		argIndex++
	}

	if filter != nil {
		if filter.Status != nil {
			query += fmt.Sprintf(" AND o.status = $%d", argIndex)
			args = append(args, *filter.Status)
			argIndex++
		}
		if filter.BranchID != nil {
			query += fmt.Sprintf(" AND o.branch_id = $%d", argIndex)
			args = append(args, *filter.BranchID)
			argIndex++
		}
		if filter.DateFrom != nil {
			query += fmt.Sprintf(" AND o.created_at >= $%d", argIndex)
			args = append(args, *filter.DateFrom)
			argIndex++
		}
		if filter.DateTo != nil {
			query += fmt.Sprintf(" AND o.created_at <= $%d", argIndex)
			args = append(args, *filter.DateTo)
			argIndex++
		}
	}

	query += " ORDER BY o.created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.BranchID, &o.Status, &o.TotalCents,
			&o.DeliveryAddress, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	log.Info("list orders success", zap.Int("count", len(orders)))
	return orders, nil
}

// TransitionStatus re-reads the current status inside the transaction,
// validates the edge, then writes with a guard on the value it read. A
// concurrent writer makes the guard miss, which surfaces as a retryable
// conflict rather than a silent overwrite.
func (r *repository) TransitionStatus(ctx context.Context, orderID uint, target OrderStatus) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "TransitionStatus"),
		zap.Uint("order_id", orderID),
		zap.String("target", string(target)),
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

	var current OrderStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID,
	).Scan(&current)

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: order %d", ErrOrderNotFound, orderID)
	}
	if err != nil {
		log.Error("failed to read current status", zap.Error(err))
		return err
	}

	if !CanTransition(current, target) {
		log.Warn("rejected transition", zap.String("current", string(current)))
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, target, orderID, current)
	if err != nil {
		log.Error("failed to update status", zap.Error(err))
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrTransitionConflict
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	committed = true
	log.Info("status transition applied", zap.String("from", string(current)))
	return nil
}

// CancelOrder cancels the order and, in the same transaction, cancels
// any active delivery assignment and frees the rider.
func (r *repository) CancelOrder(ctx context.Context, orderID uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CancelOrder"),
		zap.Uint("order_id", orderID),
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

	var current OrderStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID,
	).Scan(&current)

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: order %d", ErrOrderNotFound, orderID)
	}
	if err != nil {
		return err
	}

	if current.IsTerminal() {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, StatusCancelled)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, StatusCancelled, orderID, current)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrTransitionConflict
	}

	var riderID *uint
	err = tx.QueryRowContext(ctx, `
		UPDATE order_assignments SET status = 'cancelled'
		WHERE order_id = $1 AND status IN ('assigned', 'picked_up')
		RETURNING rider_id
	`, orderID).Scan(&riderID)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Error("failed to cancel assignment", zap.Error(err))
		return err
	}

	if riderID != nil {
		_, err = tx.ExecContext(ctx, `
			UPDATE riders SET status = 'active' WHERE id = $1 AND status = 'busy'
		`, *riderID)
		if err != nil {
			log.Error("failed to free rider", zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	committed = true
	log.Info("order cancelled", zap.String("from", string(current)))
	return nil
}
