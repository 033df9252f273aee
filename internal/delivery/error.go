package delivery

import "errors"

var (
	ErrNotAssignable    = errors.New("order is not ready for assignment")
	ErrAlreadyAssigned  = errors.New("order already has an active assignment")
	ErrNotAssigned      = errors.New("no active assignment for order")
	ErrUnknownSubStatus = errors.New("unknown assignment status")
	ErrAlreadyRated     = errors.New("order already rated")
	ErrInvalidRating    = errors.New("rating score must be between 1 and 5")
	ErrNotDelivered     = errors.New("order has not been delivered")
)
