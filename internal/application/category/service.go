package category

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/eventhub/platform/internal/domain"
)

type CategoryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, from, size int) ([]*domain.Category, error)
}

type EventRepo interface {
	ExistsByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error)
}

type Service struct {
	repo   CategoryRepo
	events EventRepo
}

func New(repo CategoryRepo, events EventRepo) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) List(ctx context.Context, from, size int) ([]*domain.Category, error) {
	return s.repo.List(ctx, from, size)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, name string) (*domain.Category, error) {
	if err := s.ensureNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}
	c, err := domain.NewCategory(name)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, name string) (*domain.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, name, id); err != nil {
		return nil, err
	}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete refuses while any event still references the category.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	inUse, err := s.events.ExistsByCategory(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrConflict("the category is still referenced by events")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		var ae *domain.AppError
		if errors.As(err, &ae) && ae.Code == domain.CodeNotFound {
			return nil
		}
		return err
	}
	if existing.ID != self {
		return domain.ErrConflict("a category with this name already exists")
	}
	return nil
}
