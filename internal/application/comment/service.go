package comment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eventhub/platform/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type CommentRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	Create(ctx context.Context, c *domain.Comment) error
	Update(ctx context.Context, c *domain.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPending(ctx context.Context) ([]*domain.Comment, error)
}

type EventRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
}

type UserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// ParticipationChecker answers whether a user holds a confirmed request for
// an event.
type ParticipationChecker interface {
	HasConfirmed(ctx context.Context, requesterID, eventID uuid.UUID) (bool, error)
}

type Service struct {
	repo     CommentRepo
	events   EventRepo
	users    UserRepo
	requests ParticipationChecker
	clock    Clock
}

func New(repo CommentRepo, events EventRepo, users UserRepo, requests ParticipationChecker, clock Clock) *Service {
	return &Service{repo: repo, events: events, users: users, requests: requests, clock: clock}
}

// Create accepts a comment from a confirmed participant of a published event.
func (s *Service) Create(ctx context.Context, authorID, eventID uuid.UUID, text string) (*domain.Comment, error) {
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	ev, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	c, err := domain.NewComment(authorID, ev, text, s.clock.Now())
	if err != nil {
		return nil, err
	}

	confirmed, err := s.requests.HasConfirmed(ctx, authorID, eventID)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return nil, domain.ErrConflict("only a confirmed participant can comment on the event")
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update lets the author edit their own comment; the edit re-enters
// moderation.
func (s *Service) Update(ctx context.Context, authorID, commentID uuid.UUID, text string) (*domain.Comment, error) {
	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c.AuthorID != authorID {
		return nil, domain.ErrConflict("only the author can edit the comment")
	}
	if err := c.Edit(text); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, authorID, commentID uuid.UUID) error {
	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c.AuthorID != authorID {
		return domain.ErrConflict("only the author can delete the comment")
	}
	return s.repo.Delete(ctx, c.ID)
}

// AdminModerate publishes or rejects a pending comment.
func (s *Service) AdminModerate(ctx context.Context, commentID uuid.UUID, publish bool) (*domain.Comment, error) {
	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := c.Moderate(publish); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AdminPending lists the moderation queue.
func (s *Service) AdminPending(ctx context.Context) ([]*domain.Comment, error) {
	return s.repo.ListPending(ctx)
}
