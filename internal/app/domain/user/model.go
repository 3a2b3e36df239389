package user

import "time"

// User is a registered exerciser. Usernames are unique (exact match) and
// records are never updated or removed.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
}
