package branch

import "errors"

var (
	ErrBranchNotFound = errors.New("branch not found")
	ErrBranchInactive = errors.New("branch is not accepting orders")
)
