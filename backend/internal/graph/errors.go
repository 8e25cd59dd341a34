package graph

import (
	"errors"
	"fmt"
)

// ErrUserNotFound is returned when a lookup by email matches no user.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken is returned when registration hits an already-claimed email.
type ErrEmailTaken struct {
	Email string
}

func (e ErrEmailTaken) Error() string {
	return fmt.Sprintf("user already exists: %s", e.Email)
}
