package event

import (
	"context"
	"time"

	zlog "github.com/rs/zerolog/log"
)

// Views are counted over a fixed lookback window in unique-IP mode.
const viewsLookback = 2 * 365 * 24 * time.Hour

const appName = "eventhub"

type Service struct {
	repo      EventRepo
	locations LocationRepo
	requests  RequestCounter
	categories CategoryRepo
	users     UserRepo
	stats     StatsClient
	pub       Publisher
	cache     Cache
	clock     Clock

	ttlDetails time.Duration
}

func New(
	repo EventRepo,
	locations LocationRepo,
	requests RequestCounter,
	categories CategoryRepo,
	users UserRepo,
	stats StatsClient,
	pub Publisher,
	cache Cache,
	clock Clock,
	ttlDetails time.Duration,
) *Service {
	if ttlDetails == 0 {
		ttlDetails = 5 * time.Minute
	}
	return &Service{
		repo:       repo,
		locations:  locations,
		requests:   requests,
		categories: categories,
		users:      users,
		stats:      stats,
		pub:        pub,
		cache:      cache,
		clock:      clock,
		ttlDetails: ttlDetails,
	}
}

func (s *Service) publish(ctx context.Context, routingKey string, payload any) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(ctx, routingKey, payload); err != nil {
		zlog.Error().Err(err).Str("rk", routingKey).Msg("publish domain event failed")
	}
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		zlog.Warn().Err(err).Strs("keys", keys).Msg("cache invalidate failed")
	}
}
