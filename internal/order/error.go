package order

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrUnknownStatus      = errors.New("unknown order status")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrTransitionConflict = errors.New("order status changed concurrently, retry")
	ErrForbidden          = errors.New("not allowed to act on this order")
)
