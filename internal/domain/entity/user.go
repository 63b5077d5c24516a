package entity

import "time"

// Roles assignable to a user account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the aggregate root for the credential store.
// Password holds a bcrypt hash, never plain text.
type User struct {
	ID        int64
	Username  string
	Password  string
	Role      string
	Enabled   bool
	CreatedAt time.Time
}
