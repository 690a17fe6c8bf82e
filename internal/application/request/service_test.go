package request

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/platform/internal/domain"
)

// --- fakes ---

type fakeRequestRepo struct {
	submitted  *domain.Request
	submitErr  error
	canceled   *domain.Request
	cancelErr  error
	byUser     []*domain.Request
	byEvent    []*domain.Request
	bulkResult domain.AdmissionResult
	bulkErr    error

	lastTarget domain.RequestStatus
	lastIDs    []uuid.UUID
}

func (f *fakeRequestRepo) Submit(ctx context.Context, requesterID, eventID uuid.UUID) (*domain.Request, error) {
	return f.submitted, f.submitErr
}

func (f *fakeRequestRepo) CancelByRequester(ctx context.Context, requestID, requesterID uuid.UUID) (*domain.Request, error) {
	return f.canceled, f.cancelErr
}

func (f *fakeRequestRepo) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*domain.Request, error) {
	return f.byUser, nil
}

func (f *fakeRequestRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.Request, error) {
	return f.byEvent, nil
}

func (f *fakeRequestRepo) BulkUpdate(ctx context.Context, eventID uuid.UUID, requestIDs []uuid.UUID, target domain.RequestStatus) (domain.AdmissionResult, error) {
	f.lastIDs = requestIDs
	f.lastTarget = target
	return f.bulkResult, f.bulkErr
}

type fakeEventRepo struct {
	event *domain.Event
	err   error
}

func (f *fakeEventRepo) GetByIDAndInitiator(ctx context.Context, id, initiatorID uuid.UUID) (*domain.Event, error) {
	return f.event, f.err
}

type fakeUserRepo struct {
	err error
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.User{ID: id}, nil
}

type capturingPublisher struct {
	keys     []string
	payloads []any
}

func (p *capturingPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	p.keys = append(p.keys, routingKey)
	p.payloads = append(p.payloads, payload)
	return nil
}

func newService(repo *fakeRequestRepo, events *fakeEventRepo, users *fakeUserRepo, pub Publisher) *Service {
	if events == nil {
		events = &fakeEventRepo{event: &domain.Event{}}
	}
	if users == nil {
		users = &fakeUserRepo{}
	}
	return New(repo, events, users, pub)
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user is a 404", func(t *testing.T) {
		svc := newService(&fakeRequestRepo{}, nil, &fakeUserRepo{err: domain.ErrNotFound("user not found")}, nil)
		_, err := svc.Submit(ctx, uuid.New(), uuid.New())
		var ae *domain.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, domain.CodeNotFound, ae.Code)
	})

	t.Run("store conflicts pass through", func(t *testing.T) {
		repo := &fakeRequestRepo{submitErr: domain.ErrConflict("the participant limit for this event is already reached")}
		svc := newService(repo, nil, nil, nil)
		_, err := svc.Submit(ctx, uuid.New(), uuid.New())
		var ae *domain.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, domain.CodeConflict, ae.Code)
	})

	t.Run("success notifies the broker", func(t *testing.T) {
		req := &domain.Request{ID: uuid.New(), Status: domain.RequestPending}
		pub := &capturingPublisher{}
		svc := newService(&fakeRequestRepo{submitted: req}, nil, nil, pub)

		got, err := svc.Submit(ctx, uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.Same(t, req, got)
		assert.Equal(t, []string{"request.created"}, pub.keys)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("missing request is a 404", func(t *testing.T) {
		svc := newService(&fakeRequestRepo{cancelErr: domain.ErrNotFound("request not found")}, nil, nil, nil)
		_, err := svc.Cancel(ctx, uuid.New(), uuid.New())
		var ae *domain.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, domain.CodeNotFound, ae.Code)
	})

	t.Run("success notifies", func(t *testing.T) {
		req := &domain.Request{ID: uuid.New(), Status: domain.RequestCanceled}
		pub := &capturingPublisher{}
		svc := newService(&fakeRequestRepo{canceled: req}, nil, nil, pub)

		got, err := svc.Cancel(ctx, uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, domain.RequestCanceled, got.Status)
		assert.Equal(t, []string{"request.canceled"}, pub.keys)
	})
}

func TestBulkUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("target must be confirmed or rejected", func(t *testing.T) {
		svc := newService(&fakeRequestRepo{}, nil, nil, nil)
		_, err := svc.BulkUpdate(ctx, uuid.New(), uuid.New(), nil, domain.RequestCanceled)
		var ae *domain.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, domain.CodeValidation, ae.Code)
	})

	t.Run("non-owner reads as 404", func(t *testing.T) {
		events := &fakeEventRepo{err: domain.ErrNotFound("event not found")}
		svc := newService(&fakeRequestRepo{}, events, nil, nil)
		_, err := svc.BulkUpdate(ctx, uuid.New(), uuid.New(), nil, domain.RequestConfirmed)
		var ae *domain.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, domain.CodeNotFound, ae.Code)
	})

	t.Run("confirmed requests are announced one by one", func(t *testing.T) {
		result := domain.AdmissionResult{
			Confirmed: []*domain.Request{
				{ID: uuid.New(), Status: domain.RequestConfirmed},
				{ID: uuid.New(), Status: domain.RequestConfirmed},
			},
			Rejected: []*domain.Request{
				{ID: uuid.New(), Status: domain.RequestRejected},
			},
		}
		repo := &fakeRequestRepo{bulkResult: result}
		pub := &capturingPublisher{}
		svc := newService(repo, nil, nil, pub)

		ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
		got, err := svc.BulkUpdate(ctx, uuid.New(), uuid.New(), ids, domain.RequestConfirmed)
		require.NoError(t, err)
		assert.Equal(t, result, got)
		assert.Equal(t, ids, repo.lastIDs)
		assert.Equal(t, domain.RequestConfirmed, repo.lastTarget)
		assert.Equal(t, []string{"request.confirmed", "request.confirmed"}, pub.keys)
	})
}

func TestListEventRequests(t *testing.T) {
	ctx := context.Background()

	t.Run("ownership required", func(t *testing.T) {
		events := &fakeEventRepo{err: domain.ErrNotFound("event not found")}
		svc := newService(&fakeRequestRepo{}, events, nil, nil)
		_, err := svc.ListEventRequests(ctx, uuid.New(), uuid.New())
		assert.Error(t, err)
	})

	t.Run("owner sees every request", func(t *testing.T) {
		repo := &fakeRequestRepo{byEvent: []*domain.Request{{ID: uuid.New()}, {ID: uuid.New()}}}
		svc := newService(repo, nil, nil, nil)
		got, err := svc.ListEventRequests(ctx, uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
