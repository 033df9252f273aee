package order

import (
	"time"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/address"
)

// OrderAggregate is the single response object for an order: scalar
// fields plus denormalized customer, branch, rider and item data. Rider
// fields are nil until a delivery assignment exists.
type OrderAggregate struct {
	ID              uint            `json:"id"`
	UserID          uint            `json:"user_id"`
	CustomerName    string          `json:"customer_name"`
	BranchID        uint            `json:"branch_id"`
	BranchName      string          `json:"branch_name"`
	BranchLatitude  float64         `json:"branch_latitude"`
	BranchLongitude float64         `json:"branch_longitude"`
	Status          OrderStatus     `json:"status"`
	TotalCents      int64           `json:"total_cents"`
	DeliveryAddress address.Address `json:"delivery_address"`
	Rider           *AggregateRider `json:"rider,omitempty"`
	Items           []AggregateItem `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type AggregateRider struct {
	RiderID          uint       `json:"rider_id"`
	Name             string     `json:"name"`
	Phone            *string    `json:"phone,omitempty"`
	VehicleType      string     `json:"vehicle_type"`
	VehiclePlate     string     `json:"vehicle_plate"`
	AssignmentStatus string     `json:"assignment_status"`
	Latitude         *float64   `json:"latitude,omitempty"`
	Longitude        *float64   `json:"longitude,omitempty"`
	LocationAt       *time.Time `json:"location_at,omitempty"`
}

type AggregateItem struct {
	MenuItemID          uint    `json:"menu_item_id"`
	Name                string  `json:"name"`
	Description         *string `json:"description,omitempty"`
	Category            string  `json:"category"`
	Quantity            int     `json:"quantity"`
	PriceCents          int64   `json:"price_cents"`
	SpecialInstructions *string `json:"special_instructions,omitempty"`
}
