package domain

import (
	"strings"

	"github.com/google/uuid"
)

type User struct {
	ID    uuid.UUID
	Name  string
	Email string
}

func NewUser(name, email string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if len(name) < 2 || len(name) > 250 {
		return nil, ErrValidation("user name must be 2..250 chars")
	}
	if email == "" || len(email) > 254 || !strings.Contains(email, "@") {
		return nil, ErrValidation("a valid email is required")
	}
	return &User{ID: uuid.New(), Name: name, Email: email}, nil
}
