package event

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/platform/internal/domain"
)

// --- fakes ---

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type memRepo struct {
	byID map[uuid.UUID]*domain.Event
}

func newMemRepo() *memRepo { return &memRepo{byID: map[uuid.UUID]*domain.Event{}} }

func (m *memRepo) Create(ctx context.Context, e *domain.Event) error {
	m.byID[e.ID] = e
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	e, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("event not found")
	}
	return e, nil
}

func (m *memRepo) GetByIDAndInitiator(ctx context.Context, id, initiatorID uuid.UUID) (*domain.Event, error) {
	e, ok := m.byID[id]
	if !ok || e.InitiatorID != initiatorID {
		return nil, domain.ErrNotFound("event not found")
	}
	return e, nil
}

func (m *memRepo) Update(ctx context.Context, e *domain.Event) error {
	m.byID[e.ID] = e
	return nil
}

func (m *memRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, from, size int) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range m.byID {
		if e.InitiatorID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memRepo) Search(ctx context.Context, f SearchFilter) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range m.byID {
		if e.State != domain.StatePublished {
			continue
		}
		if f.RangeStart != nil && e.EventDate.Before(*f.RangeStart) {
			continue
		}
		if f.RangeEnd != nil && e.EventDate.After(*f.RangeEnd) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *memRepo) AdminSearch(ctx context.Context, f AdminFilter) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range m.byID {
		out = append(out, e)
	}
	return out, nil
}

type fakeLocations struct{}

func (fakeLocations) FindOrCreate(ctx context.Context, lat, lon float64) (domain.Location, error) {
	return domain.Location{ID: uuid.New(), Lat: lat, Lon: lon}, nil
}

type fakeCounter struct {
	counts map[uuid.UUID]int64
}

func (f fakeCounter) CountConfirmed(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return f.counts[eventID], nil
}

func (f fakeCounter) CountConfirmedBatch(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := map[uuid.UUID]int64{}
	for _, id := range eventIDs {
		out[id] = f.counts[id]
	}
	return out, nil
}

type fakeCategories struct {
	missing bool
}

func (f fakeCategories) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if f.missing {
		return nil, domain.ErrNotFound("category not found")
	}
	return &domain.Category{ID: id, Name: "concerts"}, nil
}

type fakeUsers struct {
	missing bool
}

func (f fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if f.missing {
		return nil, domain.ErrNotFound("user not found")
	}
	return &domain.User{ID: id, Name: "someone"}, nil
}

type fakeStats struct {
	hits  []string
	views map[string]int64
}

func (f *fakeStats) RecordHit(ctx context.Context, uri, ip string) {
	f.hits = append(f.hits, uri)
}

func (f *fakeStats) Views(ctx context.Context, uris []string, start, end time.Time, uniqueIP bool) (map[string]int64, error) {
	return f.views, nil
}

// --- helpers ---

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc   *Service
	repo  *memRepo
	stats *fakeStats
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newMemRepo()
	stats := &fakeStats{views: map[string]int64{}}
	svc := New(repo, fakeLocations{}, fakeCounter{counts: map[uuid.UUID]int64{}},
		fakeCategories{}, fakeUsers{}, stats, NoopPublisher{}, nil, fakeClock{t: testNow}, time.Minute)
	return &fixture{svc: svc, repo: repo, stats: stats}
}

func validCreateCmd() CreateCmd {
	return CreateCmd{
		InitiatorID:       uuid.New(),
		Title:             "Jazz evening",
		Annotation:        strings.Repeat("a", 30),
		Description:       strings.Repeat("d", 30),
		CategoryID:        uuid.New(),
		EventDate:         testNow.Add(3 * time.Hour),
		Lat:               59.93,
		Lon:               30.31,
		ParticipantLimit:  10,
		RequestModeration: true,
	}
}

func (f *fixture) seedPublished(t *testing.T) *domain.Event {
	t.Helper()
	ev, err := f.svc.Create(context.Background(), validCreateCmd())
	require.NoError(t, err)
	require.NoError(t, ev.Publish(testNow))
	require.NoError(t, f.repo.Update(context.Background(), ev))
	return ev
}

// --- tests ---

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a pending event with a resolved location", func(t *testing.T) {
		f := newFixture(t)
		ev, err := f.svc.Create(ctx, validCreateCmd())
		require.NoError(t, err)
		assert.Equal(t, domain.StatePending, ev.State)
		assert.NotEqual(t, uuid.Nil, ev.Location.ID)
		_, err = f.repo.GetByID(ctx, ev.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown initiator is a 404", func(t *testing.T) {
		f := newFixture(t)
		f.svc.users = fakeUsers{missing: true}
		_, err := f.svc.Create(ctx, validCreateCmd())
		var ae *domain.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, domain.CodeNotFound, ae.Code)
	})

	t.Run("unknown category is a 404", func(t *testing.T) {
		f := newFixture(t)
		f.svc.categories = fakeCategories{missing: true}
		_, err := f.svc.Create(ctx, validCreateCmd())
		var ae *domain.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, domain.CodeNotFound, ae.Code)
	})

	t.Run("too-soon event date is a conflict", func(t *testing.T) {
		f := newFixture(t)
		cmd := validCreateCmd()
		cmd.EventDate = testNow.Add(time.Hour)
		_, err := f.svc.Create(ctx, cmd)
		var ae *domain.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, domain.CodeConflict, ae.Code)
	})
}

func TestOwnerUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("published events are frozen for the owner", func(t *testing.T) {
		f := newFixture(t)
		ev := f.seedPublished(t)
		title := "New title"
		_, err := f.svc.Update(ctx, ev.InitiatorID, ev.ID, UpdateCmd{Title: &title})
		var ae *domain.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, domain.CodeConflict, ae.Code)
	})

	t.Run("someone else's event reads as 404", func(t *testing.T) {
		f := newFixture(t)
		ev, err := f.svc.Create(ctx, validCreateCmd())
		require.NoError(t, err)
		title := "New title"
		_, err = f.svc.Update(ctx, uuid.New(), ev.ID, UpdateCmd{Title: &title})
		var ae *domain.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, domain.CodeNotFound, ae.Code)
	})

	t.Run("cancel review then resubmit", func(t *testing.T) {
		f := newFixture(t)
		ev, err := f.svc.Create(ctx, validCreateCmd())
		require.NoError(t, err)

		cancel := domain.ActionCancelReview
		got, err := f.svc.Update(ctx, ev.InitiatorID, ev.ID, UpdateCmd{StateAction: &cancel})
		require.NoError(t, err)
		assert.Equal(t, domain.StateCanceled, got.State)

		resubmit := domain.ActionSendToReview
		got, err = f.svc.Update(ctx, ev.InitiatorID, ev.ID, UpdateCmd{StateAction: &resubmit})
		require.NoError(t, err)
		assert.Equal(t, domain.StatePending, got.State)
	})

	t.Run("location patch needs both coordinates", func(t *testing.T) {
		f := newFixture(t)
		ev, err := f.svc.Create(ctx, validCreateCmd())
		require.NoError(t, err)
		lat := 48.85
		_, err = f.svc.Update(ctx, ev.InitiatorID, ev.ID, UpdateCmd{Lat: &lat})
		var ae *domain.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, domain.CodeValidation, ae.Code)
	})
}

func TestAdminUpdate(t *testing.T) {
	ctx := context.Background()
	publish := domain.ActionPublishEvent
	reject := domain.ActionRejectEvent

	t.Run("publish stamps publishedOn once", func(t *testing.T) {
		f := newFixture(t)
		ev, err := f.svc.Create(ctx, validCreateCmd())
		require.NoError(t, err)

		got, err := f.svc.AdminUpdate(ctx, ev.ID, AdminUpdateCmd{StateAction: &publish})
		require.NoError(t, err)
		assert.Equal(t, domain.StatePublished, got.State)
		require.NotNil(t, got.PublishedOn)
		assert.Equal(t, testNow, *got.PublishedOn)

		_, err = f.svc.AdminUpdate(ctx, ev.ID, AdminUpdateCmd{StateAction: &publish})
		var ae *domain.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, domain.CodeConflict, ae.Code)
	})

	t.Run("reject refuses published events", func(t *testing.T) {
		f := newFixture(t)
		ev := f.seedPublished(t)
		_, err := f.svc.AdminUpdate(ctx, ev.ID, AdminUpdateCmd{StateAction: &reject})
		var ae *domain.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, domain.CodeConflict, ae.Code)
	})

	t.Run("publishing applies the shorter lead time", func(t *testing.T) {
		f := newFixture(t)
		ev, err := f.svc.Create(ctx, validCreateCmd())
		require.NoError(t, err)

		soon := testNow.Add(90 * time.Minute)
		got, err := f.svc.AdminUpdate(ctx, ev.ID, AdminUpdateCmd{EventDate: &soon, StateAction: &publish})
		require.NoError(t, err)
		assert.Equal(t, domain.StatePublished, got.State)
	})

	t.Run("plain edit keeps the two hour lead", func(t *testing.T) {
		f := newFixture(t)
		ev, err := f.svc.Create(ctx, validCreateCmd())
		require.NoError(t, err)

		soon := testNow.Add(90 * time.Minute)
		_, err = f.svc.AdminUpdate(ctx, ev.ID, AdminUpdateCmd{EventDate: &soon})
		var ae *domain.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, domain.CodeConflict, ae.Code)
	})
}

func TestPublicReads(t *testing.T) {
	ctx := context.Background()

	t.Run("unpublished event is invisible", func(t *testing.T) {
		f := newFixture(t)
		ev, err := f.svc.Create(ctx, validCreateCmd())
		require.NoError(t, err)
		_, err = f.svc.PublicGetByID(ctx, ev.ID, "10.0.0.1")
		var ae *domain.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, domain.CodeNotFound, ae.Code)
	})

	t.Run("published event is served and counted", func(t *testing.T) {
		f := newFixture(t)
		ev := f.seedPublished(t)
		f.stats.views[EventURI(ev.ID)] = 7

		info, err := f.svc.PublicGetByID(ctx, ev.ID, "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, ev.ID, info.Event.ID)
		assert.Equal(t, int64(7), info.Views)
		assert.Contains(t, f.stats.hits, EventURI(ev.ID))
	})

	t.Run("search rejects an inverted range", func(t *testing.T) {
		f := newFixture(t)
		start := testNow.Add(2 * time.Hour)
		end := testNow.Add(time.Hour)
		_, err := f.svc.PublicSearch(ctx, SearchFilter{RangeStart: &start, RangeEnd: &end}, SortByEventDate, "10.0.0.1")
		var ae *domain.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, domain.CodeValidation, ae.Code)
	})

	t.Run("search records a hit on the catalogue uri", func(t *testing.T) {
		f := newFixture(t)
		f.seedPublished(t)
		infos, err := f.svc.PublicSearch(ctx, SearchFilter{}, SortByEventDate, "10.0.0.1")
		require.NoError(t, err)
		assert.Len(t, infos, 1)
		assert.Contains(t, f.stats.hits, "/events")
	})

	t.Run("views sort uses the stat counts", func(t *testing.T) {
		f := newFixture(t)
		ev1 := f.seedPublished(t)
		ev2 := f.seedPublished(t)
		f.stats.views[EventURI(ev1.ID)] = 1
		f.stats.views[EventURI(ev2.ID)] = 9

		infos, err := f.svc.PublicSearch(ctx, SearchFilter{}, SortByViews, "10.0.0.1")
		require.NoError(t, err)
		require.Len(t, infos, 2)
		assert.Equal(t, ev2.ID, infos[0].Event.ID)
		assert.Equal(t, ev1.ID, infos[1].Event.ID)
	})
}

func TestAdminSearch(t *testing.T) {
	f := newFixture(t)
	start := testNow.Add(2 * time.Hour)
	end := testNow.Add(time.Hour)
	_, err := f.svc.AdminSearch(context.Background(), AdminFilter{RangeStart: &start, RangeEnd: &end})
	var ae *domain.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, domain.CodeValidation, ae.Code)
}
