package domain

import "time"

// User represents a registered account holder.
type User struct {
	ID             string
	Email          string
	FullName       string
	HashedPassword string
	CreatedAt      time.Time
}
