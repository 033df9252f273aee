package stats

import (
	"context"
	"database/sql"
	"time"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	OrdersByStatus(ctx context.Context, from, to time.Time) ([]StatusCount, error)
	RevenueByBranch(ctx context.Context, from, to time.Time) ([]BranchRevenue, error)
	RiderSummaries(ctx context.Context, from, to time.Time) ([]RiderSummary, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) OrdersByStatus(ctx context.Context, from, to time.Time) ([]StatusCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY status
		ORDER BY status
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []StatusCount
	for rows.Next() {
		var c StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// RevenueByBranch only counts delivered orders; cancelled and in-flight
// totals are not revenue.
func (r *repository) RevenueByBranch(ctx context.Context, from, to time.Time) ([]BranchRevenue, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "RevenueByBranch"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT b.id, b.name, COUNT(o.id), COALESCE(SUM(o.total_cents), 0)
		FROM branches b
		LEFT JOIN orders o ON o.branch_id = b.id
			AND o.status = 'delivered'
			AND o.created_at >= $1 AND o.created_at < $2
		GROUP BY b.id, b.name
		ORDER BY b.id
	`, from, to)
	if err != nil {
		log.Error("failed to query branch revenue", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var revenues []BranchRevenue
	for rows.Next() {
		var rev BranchRevenue
		if err := rows.Scan(&rev.BranchID, &rev.BranchName, &rev.OrderCount, &rev.RevenueCents); err != nil {
			return nil, err
		}
		revenues = append(revenues, rev)
	}
	return revenues, rows.Err()
}

// RiderSummaries joins ratings through the assignment's order so each
// delivered assignment pairs with at most its own rating; joining both
// tables on rider_id alone would cross-multiply the counts.
func (r *repository) RiderSummaries(ctx context.Context, from, to time.Time) ([]RiderSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rd.id, u.name,
		       COUNT(DISTINCT a.id) FILTER (WHERE a.status = 'delivered'
		           AND a.completed_at >= $1 AND a.completed_at < $2),
		       AVG(dr.score)
		FROM riders rd
		JOIN users u ON u.id = rd.user_id
		LEFT JOIN order_assignments a ON a.rider_id = rd.id
		LEFT JOIN delivery_ratings dr ON dr.order_id = a.order_id AND dr.rider_id = rd.id
		GROUP BY rd.id, u.name
		ORDER BY rd.id
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []RiderSummary
	for rows.Next() {
		var s RiderSummary
		if err := rows.Scan(&s.RiderID, &s.Name, &s.DeliveredOrders, &s.AverageRating); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
