package menu

import "errors"

var (
	ErrItemNotFound    = errors.New("menu item not found")
	ErrItemUnavailable = errors.New("menu item not available at this branch")
	ErrInvalidPrice    = errors.New("price must be positive")
)
