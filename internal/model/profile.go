package model

// Role is the authorization role stored on a profile.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
)

// Profile is the per-user row holding the role that gates privileged writes.
type Profile struct {
	UserID   string  `json:"user_id"`
	Role     Role    `json:"role"`
	FullName *string `json:"full_name"`
}

// User is a session verified by the database gateway.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
