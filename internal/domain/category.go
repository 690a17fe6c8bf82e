package domain

import (
	"strings"

	"github.com/google/uuid"
)

type Category struct {
	ID   uuid.UUID
	Name string
}

func NewCategory(name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 50 {
		return nil, ErrValidation("category name is required and must be <= 50 chars")
	}
	return &Category{ID: uuid.New(), Name: name}, nil
}

func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 50 {
		return ErrValidation("category name is required and must be <= 50 chars")
	}
	c.Name = name
	return nil
}
