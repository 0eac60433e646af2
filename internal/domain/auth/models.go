package auth

import "time"

// UserContext is what the auth middleware stores on the request context.
type UserContext struct {
	UserID   string
	Username string
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserRecord struct {
	User
	PasswordHash string
}
