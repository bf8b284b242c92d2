package domain

import "time"

// User is the domain entity for a user account. Uid is the opaque subject
// identifier referenced by todos (owner, creator, assignees).
type User struct {
	UID          string
	Username     string
	Email        *string
	DisplayName  *string
	PasswordHash string
	CreatedAt    time.Time
}
