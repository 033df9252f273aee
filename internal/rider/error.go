package rider

import "errors"

var (
	ErrRiderNotFound      = errors.New("rider not found")
	ErrRiderBusy          = errors.New("rider already has an active delivery")
	ErrRiderInactive      = errors.New("rider is not on shift")
	ErrLocationNotFound   = errors.New("no location recorded for rider")
	ErrInvalidCoordinates = errors.New("coordinates out of range")
	ErrStatusConflict     = errors.New("rider status changed concurrently")
)
