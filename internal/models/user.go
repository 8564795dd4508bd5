package models

import "errors"

// ErrUserNotFound is returned by user lookups when no user has the requested id.
var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
