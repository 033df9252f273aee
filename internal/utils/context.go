package utils

import "context"

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UserRoleKey contextKey = "role"
	BranchIDKey contextKey = "branch_id"
	RiderIDKey  contextKey = "rider_id"
)

// SetActorContext sets the authenticated actor into context (called by middleware).
// branchID and riderID are nil for actors without a branch or rider binding.
func SetActorContext(ctx context.Context, userID uint, role string, branchID, riderID *uint) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	ctx = context.WithValue(ctx, UserRoleKey, role)
	if branchID != nil {
		ctx = context.WithValue(ctx, BranchIDKey, *branchID)
	}
	if riderID != nil {
		ctx = context.WithValue(ctx, RiderIDKey, *riderID)
	}
	return ctx
}

// GetUserIDFromContext retrieves userID safely
func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(UserIDKey).(uint)
	return id, ok
}

func GetUserRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(UserRoleKey).(string)
	return role
}

func GetBranchIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(BranchIDKey).(uint)
	return id, ok
}

func GetRiderIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(RiderIDKey).(uint)
	return id, ok
}
