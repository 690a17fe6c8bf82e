package event

import (
	"context"
	"sort"

	"github.com/eventhub/platform/internal/domain"
)

type SortOrder string

const (
	SortByEventDate SortOrder = "EVENT_DATE"
	SortByViews     SortOrder = "VIEWS"
)

// PublicSearch lists published events matching the filter, enriched and
// sorted descending by event date or view count. The access itself counts as
// a hit on /events.
func (s *Service) PublicSearch(ctx context.Context, f SearchFilter, order SortOrder, clientIP string) ([]Info, error) {
	if f.RangeStart != nil && f.RangeEnd != nil && f.RangeStart.After(*f.RangeEnd) {
		return nil, domain.ErrValidation("rangeStart must not be after rangeEnd")
	}
	// No explicit range: only upcoming events.
	if f.RangeStart == nil && f.RangeEnd == nil {
		now := s.clock.Now()
		f.RangeStart = &now
	}

	events, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}

	infos, err := s.enrichMany(ctx, events)
	if err != nil {
		return nil, err
	}

	switch order {
	case SortByViews:
		sort.SliceStable(infos, func(i, j int) bool { return infos[i].Views > infos[j].Views })
	default:
		sort.SliceStable(infos, func(i, j int) bool {
			return infos[i].Event.EventDate.After(infos[j].Event.EventDate)
		})
	}

	s.recordHit(ctx, "/events", clientIP)
	return infos, nil
}
