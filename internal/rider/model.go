package rider

import "time"

type RiderStatus string

const (
	StatusActive   RiderStatus = "active"
	StatusInactive RiderStatus = "inactive"
	StatusBusy     RiderStatus = "busy"
)

type Rider struct {
	ID           uint        `json:"id"`
	UserID       uint        `json:"user_id"`
	BranchID     uint        `json:"branch_id"`
	Name         string      `json:"name"`
	Phone        *string     `json:"phone,omitempty"`
	VehicleType  string      `json:"vehicle_type"`
	VehiclePlate string      `json:"vehicle_plate"`
	Status       RiderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

type Location struct {
	RiderID   uint      `json:"rider_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateRiderInput struct {
	UserID       uint   `json:"user_id" binding:"required"`
	BranchID     uint   `json:"branch_id" binding:"required"`
	VehicleType  string `json:"vehicle_type" binding:"required"`
	VehiclePlate string `json:"vehicle_plate" binding:"required"`
}
