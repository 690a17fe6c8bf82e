package compilation

import (
	"context"

	"github.com/google/uuid"

	"github.com/eventhub/platform/internal/domain"
)

type CompilationRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Compilation, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Create(ctx context.Context, c *domain.Compilation) error
	Update(ctx context.Context, c *domain.Compilation) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, pinned *bool, from, size int) ([]*domain.Compilation, error)
}

type EventRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Event, error)
}

type RequestCounter interface {
	CountConfirmedBatch(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

// Info is a compilation with its member events resolved.
type Info struct {
	Compilation       *domain.Compilation
	Events            []*domain.Event
	ConfirmedRequests map[uuid.UUID]int64
}

type Service struct {
	repo     CompilationRepo
	events   EventRepo
	requests RequestCounter
}

func New(repo CompilationRepo, events EventRepo, requests RequestCounter) *Service {
	return &Service{repo: repo, events: events, requests: requests}
}

type UpdateCmd struct {
	Title    *string
	Pinned   *bool
	EventIDs *[]uuid.UUID
}

func (s *Service) List(ctx context.Context, pinned *bool, from, size int) ([]Info, error) {
	comps, err := s.repo.List(ctx, pinned, from, size)
	if err != nil {
		return nil, err
	}
	out := make([]Info, 0, len(comps))
	for _, c := range comps {
		info, err := s.resolve(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Info, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Info{}, err
	}
	return s.resolve(ctx, c)
}

func (s *Service) Create(ctx context.Context, title string, pinned bool, eventIDs []uuid.UUID) (Info, error) {
	exists, err := s.repo.ExistsByTitle(ctx, title)
	if err != nil {
		return Info{}, err
	}
	if exists {
		return Info{}, domain.ErrConflict("a compilation with this title already exists")
	}

	if len(eventIDs) > 0 {
		if err := s.ensureEventsExist(ctx, eventIDs); err != nil {
			return Info{}, err
		}
	}

	c, err := domain.NewCompilation(title, pinned, eventIDs)
	if err != nil {
		return Info{}, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Info{}, err
	}
	return s.resolve(ctx, c)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, cmd UpdateCmd) (Info, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Info{}, err
	}

	if cmd.Title != nil && *cmd.Title != c.Title {
		exists, err := s.repo.ExistsByTitle(ctx, *cmd.Title)
		if err != nil {
			return Info{}, err
		}
		if exists {
			return Info{}, domain.ErrConflict("a compilation with this title already exists")
		}
		c.Title = *cmd.Title
	}
	if cmd.Pinned != nil {
		c.Pinned = *cmd.Pinned
	}
	if cmd.EventIDs != nil {
		if len(*cmd.EventIDs) > 0 {
			if err := s.ensureEventsExist(ctx, *cmd.EventIDs); err != nil {
				return Info{}, err
			}
		}
		c.EventIDs = *cmd.EventIDs
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return Info{}, err
	}
	return s.resolve(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ensureEventsExist(ctx context.Context, ids []uuid.UUID) error {
	found, err := s.events.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return domain.ErrNotFound("some of the referenced events were not found")
	}
	return nil
}

func (s *Service) resolve(ctx context.Context, c *domain.Compilation) (Info, error) {
	info := Info{Compilation: c, ConfirmedRequests: map[uuid.UUID]int64{}}
	if len(c.EventIDs) == 0 {
		return info, nil
	}

	events, err := s.events.GetByIDs(ctx, c.EventIDs)
	if err != nil {
		return Info{}, err
	}
	confirmed, err := s.requests.CountConfirmedBatch(ctx, c.EventIDs)
	if err != nil {
		return Info{}, err
	}

	info.Events = events
	info.ConfirmedRequests = confirmed
	return info, nil
}
