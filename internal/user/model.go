package user

import "time"

type Role string

const (
	RoleCustomer      Role = "CUSTOMER"
	RoleAdmin         Role = "ADMIN"
	RoleBranchManager Role = "BRANCH_MANAGER"
	RoleRider         Role = "RIDER"
)

// Password holds the bcrypt hash and never serializes; responses carry
// the rest of the profile.
type User struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Phone     *string   `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	BranchID  *uint     `json:"branch_id,omitempty"`
	RiderID   *uint     `json:"rider_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
