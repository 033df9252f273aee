package delivery

import (
	"time"
)

type AssignmentStatus string

// Assignment sub-statuses track the rider leg of an order. The order's
// own status stays authoritative; these refine out_for_delivery.
const (
	AssignmentAssigned  AssignmentStatus = "assigned"
	AssignmentPickedUp  AssignmentStatus = "picked_up"
	AssignmentDelivered AssignmentStatus = "delivered"
	AssignmentCancelled AssignmentStatus = "cancelled"
)

func (s AssignmentStatus) Active() bool {
	return s == AssignmentAssigned || s == AssignmentPickedUp
}

type Assignment struct {
	ID          string           `json:"id"`
	OrderID     uint             `json:"order_id"`
	RiderID     uint             `json:"rider_id"`
	Status      AssignmentStatus `json:"status"`
	AssignedAt  time.Time        `json:"assigned_at"`
	PickedUpAt  *time.Time       `json:"picked_up_at,omitempty"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
}

type Rating struct {
	ID        uint      `json:"id"`
	OrderID   uint      `json:"order_id"`
	UserID    uint      `json:"user_id"`
	RiderID   uint      `json:"rider_id"`
	Score     int       `json:"score"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AssignInput struct {
	RiderID uint `json:"rider_id" binding:"required"`
}

type ReportStatusInput struct {
	Status AssignmentStatus `json:"status" binding:"required"`
}

type RateInput struct {
	Score   int     `json:"score" binding:"required"`
	Comment *string `json:"comment"`
}
