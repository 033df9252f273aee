package stats

import "time"

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type BranchRevenue struct {
	BranchID     uint   `json:"branch_id"`
	BranchName   string `json:"branch_name"`
	OrderCount   int64  `json:"order_count"`
	RevenueCents int64  `json:"revenue_cents"`
}

type RiderSummary struct {
	RiderID         uint     `json:"rider_id"`
	Name            string   `json:"name"`
	DeliveredOrders int64    `json:"delivered_orders"`
	AverageRating   *float64 `json:"average_rating,omitempty"`
}

// Dashboard is the admin overview: order volume per status, delivered
// revenue per branch and rider performance over the requested window.
type Dashboard struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	OrdersBy      []StatusCount   `json:"orders_by_status"`
	BranchRevenue []BranchRevenue `json:"branch_revenue"`
	Riders        []RiderSummary  `json:"riders"`
}
