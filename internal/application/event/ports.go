package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eventhub/platform/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// SearchFilter is the public /events query.
type SearchFilter struct {
	Text          string
	CategoryIDs   []uuid.UUID
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
	From          int
	Size          int
}

// AdminFilter is the /admin/events query.
type AdminFilter struct {
	UserIDs     []uuid.UUID
	States      []domain.EventState
	CategoryIDs []uuid.UUID
	RangeStart  *time.Time
	RangeEnd    *time.Time
	From        int
	Size        int
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	GetByIDAndInitiator(ctx context.Context, id, initiatorID uuid.UUID) (*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, from, size int) ([]*domain.Event, error)
	Search(ctx context.Context, f SearchFilter) ([]*domain.Event, error)
	AdminSearch(ctx context.Context, f AdminFilter) ([]*domain.Event, error)
}

type LocationRepo interface {
	// FindOrCreate reuses an existing row with identical coordinates.
	FindOrCreate(ctx context.Context, lat, lon float64) (domain.Location, error)
}

// RequestCounter exposes confirmed-request aggregates kept by the request
// store.
type RequestCounter interface {
	CountConfirmed(ctx context.Context, eventID uuid.UUID) (int64, error)
	CountConfirmedBatch(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type CategoryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
}

type UserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// StatsClient is the boundary to the statistics microservice.
type StatsClient interface {
	// RecordHit is fire-and-forget; failures are logged, never surfaced.
	RecordHit(ctx context.Context, uri, ip string)
	Views(ctx context.Context, uris []string, start, end time.Time, uniqueIP bool) (map[string]int64, error)
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
