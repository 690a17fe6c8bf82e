package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Compilation is a curated, optionally pinned selection of events.
type Compilation struct {
	ID       uuid.UUID
	Title    string
	Pinned   bool
	EventIDs []uuid.UUID
}

func NewCompilation(title string, pinned bool, eventIDs []uuid.UUID) (*Compilation, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > 50 {
		return nil, ErrValidation("compilation title is required and must be <= 50 chars")
	}
	return &Compilation{ID: uuid.New(), Title: title, Pinned: pinned, EventIDs: eventIDs}, nil
}
