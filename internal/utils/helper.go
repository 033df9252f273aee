package utils

import (
	"strconv"
)

const (
	RoleCustomer      = "CUSTOMER"
	RoleAdmin         = "ADMIN"
	RoleBranchManager = "BRANCH_MANAGER"
	RoleRider         = "RIDER"
)

func StrPtr(s string) *string {
	return &s
}

func UintPtr(n uint) *uint {
	return &n
}

func ToUint(id string) (uint, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	return uint(n), err
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsStaff reports whether the role may act on any branch's orders.
func IsStaff(role string) bool {
	return role == RoleAdmin || role == RoleBranchManager
}
