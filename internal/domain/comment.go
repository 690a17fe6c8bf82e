package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CommentStatus string

const (
	CommentPending   CommentStatus = "PENDING"
	CommentPublished CommentStatus = "PUBLISHED"
	CommentRejected  CommentStatus = "REJECTED"
)

// Comment is feedback left by a confirmed participant of a published event.
// New and edited comments wait for admin moderation in PENDING.
type Comment struct {
	ID        uuid.UUID
	Text      string
	AuthorID  uuid.UUID
	EventID   uuid.UUID
	CreatedOn time.Time
	Status    CommentStatus
}

func NewComment(authorID uuid.UUID, ev *Event, text string, now time.Time) (*Comment, error) {
	if authorID == ev.InitiatorID {
		return nil, ErrConflict("the event initiator cannot comment on their own event")
	}
	if ev.State != StatePublished {
		return nil, ErrConflict("comments are only allowed on published events")
	}
	text = strings.TrimSpace(text)
	if text == "" || len(text) > 2000 {
		return nil, ErrValidation("comment text is required and must be <= 2000 chars")
	}
	return &Comment{
		ID:        uuid.New(),
		Text:      text,
		AuthorID:  authorID,
		EventID:   ev.ID,
		CreatedOn: now.UTC(),
		Status:    CommentPending,
	}, nil
}

// Edit replaces the text and sends the comment back to moderation.
func (c *Comment) Edit(text string) error {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > 2000 {
		return ErrValidation("comment text is required and must be <= 2000 chars")
	}
	c.Text = text
	c.Status = CommentPending
	return nil
}

// Moderate resolves a pending comment.
func (c *Comment) Moderate(publish bool) error {
	if c.Status != CommentPending {
		return ErrConflict("only a pending comment can be moderated")
	}
	if publish {
		c.Status = CommentPublished
	} else {
		c.Status = CommentRejected
	}
	return nil
}
