package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/eventhub/platform/internal/domain"
)

type UserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, ids []uuid.UUID, from, size int) ([]*domain.User, error)
}

type Service struct {
	repo UserRepo
}

func New(repo UserRepo) *Service {
	return &Service{repo: repo}
}

// List pages through users, optionally restricted to an id set.
func (s *Service) List(ctx context.Context, ids []uuid.UUID, from, size int) ([]*domain.User, error) {
	return s.repo.List(ctx, ids, from, size)
}

func (s *Service) Create(ctx context.Context, name, email string) (*domain.User, error) {
	u, err := domain.NewUser(name, email)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, u.Email); err == nil {
		return nil, domain.ErrConflict("a user with this email already exists")
	} else {
		var ae *domain.AppError
		if !errors.As(err, &ae) || ae.Code != domain.CodeNotFound {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
