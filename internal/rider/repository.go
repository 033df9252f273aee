package rider

import (
	"context"
	"database/sql"
	"errors"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, id uint) (*Rider, error)
	ListByBranch(ctx context.Context, branchID uint) ([]*Rider, error)
	Create(ctx context.Context, input CreateRiderInput) (*Rider, error)
	SetStatus(ctx context.Context, id uint, from, to RiderStatus) error
	UpsertLocation(ctx context.Context, riderID uint, lat, lon float64) error
	GetLocation(ctx context.Context, riderID uint) (*Location, error)
	GetLocationByOrder(ctx context.Context, orderID uint) (*Location, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const riderColumns = `
	r.id, r.user_id, r.branch_id, u.name, u.phone,
	r.vehicle_type, r.vehicle_plate, r.status, r.created_at
`

func scanRider(row interface{ Scan(...any) error }) (*Rider, error) {
	var rd Rider
	err := row.Scan(
		&rd.ID, &rd.UserID, &rd.BranchID, &rd.Name, &rd.Phone,
		&rd.VehicleType, &rd.VehiclePlate, &rd.Status, &rd.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rd, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Rider, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+riderColumns+`
		FROM riders r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1
	`, id)

	rd, err := scanRider(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRiderNotFound
	}
	return rd, err
}

func (r *repository) ListByBranch(ctx context.Context, branchID uint) ([]*Rider, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByBranch"),
		zap.Uint("branch_id", branchID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+riderColumns+`
		FROM riders r
		JOIN users u ON u.id = r.user_id
		WHERE r.branch_id = $1
		ORDER BY u.name ASC
	`, branchID)
	if err != nil {
		log.Error("failed to query riders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var riders []*Rider
	for rows.Next() {
		rd, err := scanRider(rows)
		if err != nil {
			log.Error("failed to scan rider row", zap.Error(err))
			return nil, err
		}
		riders = append(riders, rd)
	}

	return riders, rows.Err()
}

func (r *repository) Create(ctx context.Context, input CreateRiderInput) (*Rider, error) {
	var id uint
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO riders (user_id, branch_id, vehicle_type, vehicle_plate, status)
		VALUES ($1, $2, $3, $4, 'active')
		RETURNING id
	`, input.UserID, input.BranchID, input.VehicleType, input.VehiclePlate).
		Scan(&id)

	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// SetStatus transitions a rider's status with a guard on the expected
// current value, so two concurrent assignments cannot both win.
func (r *repository) SetStatus(ctx context.Context, id uint, from, to RiderStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE riders SET status = $1 WHERE id = $2 AND status = $3
	`, to, id, from)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// UpsertLocation keeps only the latest position; the timestamp is the
// database server's clock.
func (r *repository) UpsertLocation(ctx context.Context, riderID uint, lat, lon float64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO rider_locations (rider_id, latitude, longitude, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (rider_id)
		DO UPDATE SET latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude, updated_at = NOW()
	`, riderID, lat, lon)

	return err
}

func (r *repository) GetLocation(ctx context.Context, riderID uint) (*Location, error) {
	var loc Location
	err := r.db.QueryRowContext(ctx, `
		SELECT rider_id, latitude, longitude, updated_at
		FROM rider_locations
		WHERE rider_id = $1
	`, riderID).
		Scan(&loc.RiderID, &loc.Latitude, &loc.Longitude, &loc.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, err
	}

	return &loc, nil
}

// GetLocationByOrder resolves the rider through the order's active
// assignment and returns that rider's last known position.
func (r *repository) GetLocationByOrder(ctx context.Context, orderID uint) (*Location, error) {
	var loc Location
	err := r.db.QueryRowContext(ctx, `
		SELECT rl.rider_id, rl.latitude, rl.longitude, rl.updated_at
		FROM order_assignments oa
		JOIN rider_locations rl ON rl.rider_id = oa.rider_id
		WHERE oa.order_id = $1 AND oa.status IN ('assigned', 'picked_up')
		ORDER BY oa.assigned_at DESC
		LIMIT 1
	`, orderID).
		Scan(&loc.RiderID, &loc.Latitude, &loc.Longitude, &loc.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, err
	}

	return &loc, nil
}
