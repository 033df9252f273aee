package order

import (
	"time"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/address"
)

type OrderStatus string

// Single status vocabulary shared by every actor path: customer, branch
// staff and rider all transition orders through this one enumeration.
const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// Transitions is the authoritative status graph. Cancellation is an edge
// from every non-terminal status; delivered and cancelled are terminal.
var Transitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusReady, StatusCancelled},
	StatusReady:          {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

func (s OrderStatus) Valid() bool {
	_, ok := Transitions[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether (from, to) is an edge of the status graph.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range Transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID              uint            `json:"id"`
	UserID          uint            `json:"user_id"`
	BranchID        uint            `json:"branch_id"`
	Status          OrderStatus     `json:"status"`
	TotalCents      int64           `json:"total_cents"`
	DeliveryAddress address.Address `json:"delivery_address"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Items           []OrderItem     `json:"items"`
}

type OrderItem struct {
	ID                  uint    `json:"id"`
	OrderID             uint    `json:"order_id"`
	MenuItemID          uint    `json:"menu_item_id"`
	Quantity            int     `json:"quantity"`
	PriceCents          int64   `json:"price_cents"`
	SpecialInstructions *string `json:"special_instructions,omitempty"`
}

type CreateOrderLine struct {
	MenuItemID          uint    `json:"menu_item_id" binding:"required"`
	Quantity            int     `json:"quantity" binding:"required"`
	SpecialInstructions *string `json:"special_instructions"`
}

// CreateOrderInput carries no price fields on purpose: every price is
// resolved server-side against the branch menu at creation time.
type CreateOrderInput struct {
	BranchID        uint              `json:"branch_id" binding:"required"`
	Items           []CreateOrderLine `json:"items" binding:"required"`
	DeliveryAddress address.Address   `json:"delivery_address" binding:"required"`
}

type OrderFilterInput struct {
	Status   *OrderStatus
	BranchID *uint
	DateFrom *time.Time
	DateTo   *time.Time
}
