package users

import "time"

// User is a registered chat account. Accounts are immutable after
// registration and are never deleted.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
