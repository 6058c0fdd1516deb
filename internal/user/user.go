package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password, so login failures do not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
