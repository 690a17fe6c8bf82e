package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventhub/platform/internal/domain"
)

// uniqueViolation is the postgres error code raised by the partial unique
// index on (requester_id, event_id) for non-canceled requests.
const uniqueViolation = "23505"

const requestColumns = `id, event_id, requester_id, created_at, status`

// RequestRepo owns participation request rows. Submit and BulkUpdate lock the
// event row first so concurrent admissions against the same event serialize
// and the confirmed count they read stays true until commit.
type RequestRepo struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewRequestRepo(pool *pgxpool.Pool) *RequestRepo {
	return &RequestRepo{pool: pool, now: time.Now}
}

func scanRequest(row pgx.Row) (*domain.Request, error) {
	var r domain.Request
	var status string
	err := row.Scan(&r.ID, &r.EventID, &r.RequesterID, &r.CreatedOn, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("request not found")
	}
	if err != nil {
		return nil, err
	}
	r.Status = domain.RequestStatus(status)
	return &r, nil
}

func collectRequests(rows pgx.Rows) ([]*domain.Request, error) {
	defer rows.Close()
	var out []*domain.Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// lockEvent reads the admission-relevant event fields under FOR UPDATE.
func lockEvent(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (*domain.Event, error) {
	var e domain.Event
	var state string
	err := tx.QueryRow(ctx, `
		SELECT id, initiator_id, state, participant_limit, request_moderation
		FROM events WHERE id = $1 FOR UPDATE
	`, eventID).Scan(&e.ID, &e.InitiatorID, &state, &e.ParticipantLimit, &e.RequestModeration)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("event not found")
	}
	if err != nil {
		return nil, err
	}
	e.State = domain.EventState(state)
	return &e, nil
}

func countConfirmedTx(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (int, error) {
	var n int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM requests WHERE event_id = $1 AND status = 'CONFIRMED'`,
		eventID,
	).Scan(&n)
	return n, err
}

func (r *RequestRepo) Submit(ctx context.Context, requesterID, eventID uuid.UUID) (*domain.Request, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ev, err := lockEvent(ctx, tx, eventID)
	if err != nil {
		return nil, err
	}

	var dup bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM requests
			WHERE requester_id = $1 AND event_id = $2 AND status <> 'CANCELED')
	`, requesterID, eventID).Scan(&dup)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, domain.ErrConflict("a participation request for this event already exists")
	}

	req, err := domain.NewRequest(requesterID, ev, r.now())
	if err != nil {
		return nil, err
	}

	if ev.ParticipantLimit > 0 {
		confirmed, err := countConfirmedTx(ctx, tx, eventID)
		if err != nil {
			return nil, err
		}
		if confirmed >= ev.ParticipantLimit {
			return nil, domain.ErrConflict("the participant limit for this event is already reached")
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO requests (id, event_id, requester_id, created_at, status)
		VALUES ($1, $2, $3, $4, $5)
	`, req.ID, req.EventID, req.RequesterID, req.CreatedOn, string(req.Status))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrConflict("a participation request for this event already exists")
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return req, nil
}

// CancelByRequester is idempotent: canceling an already canceled request
// rewrites the same status.
func (r *RequestRepo) CancelByRequester(ctx context.Context, requestID, requesterID uuid.UUID) (*domain.Request, error) {
	return scanRequest(r.pool.QueryRow(ctx, `
		UPDATE requests SET status = 'CANCELED'
		WHERE id = $1 AND requester_id = $2
		RETURNING `+requestColumns,
		requestID, requesterID,
	))
}

func (r *RequestRepo) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*domain.Request, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE requester_id = $1 ORDER BY created_at`,
		requesterID,
	)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (r *RequestRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.Request, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE event_id = $1 ORDER BY created_at`,
		eventID,
	)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

// BulkUpdate runs the owner's confirm/reject decision in one transaction.
// Requests absent from the table are skipped; the batch keeps its input order
// so slots are granted first-listed-first.
func (r *RequestRepo) BulkUpdate(ctx context.Context, eventID uuid.UUID, requestIDs []uuid.UUID, target domain.RequestStatus) (domain.AdmissionResult, error) {
	var res domain.AdmissionResult
	if len(requestIDs) == 0 {
		return res, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return res, err
	}
	defer tx.Rollback(ctx)

	ev, err := lockEvent(ctx, tx, eventID)
	if err != nil {
		return res, err
	}

	confirmed, err := countConfirmedTx(ctx, tx, eventID)
	if err != nil {
		return res, err
	}

	rows, err := tx.Query(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE event_id = $1 AND id = ANY($2)`,
		eventID, requestIDs,
	)
	if err != nil {
		return res, err
	}
	found, err := collectRequests(rows)
	if err != nil {
		return res, err
	}
	byID := make(map[uuid.UUID]*domain.Request, len(found))
	for _, req := range found {
		byID[req.ID] = req
	}
	batch := make([]*domain.Request, 0, len(requestIDs))
	for _, id := range requestIDs {
		if req, ok := byID[id]; ok {
			batch = append(batch, req)
		}
	}

	res, err = domain.DecideAdmission(ev, confirmed, target, batch)
	if err != nil {
		return domain.AdmissionResult{}, err
	}

	for _, req := range append(append([]*domain.Request{}, res.Confirmed...), res.Rejected...) {
		if _, err := tx.Exec(ctx,
			`UPDATE requests SET status = $2 WHERE id = $1`,
			req.ID, string(req.Status),
		); err != nil {
			return domain.AdmissionResult{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.AdmissionResult{}, err
	}
	return res, nil
}

// CountConfirmed backs event enrichment outside the admission transactions.
func (r *RequestRepo) CountConfirmed(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM requests WHERE event_id = $1 AND status = 'CONFIRMED'`,
		eventID,
	).Scan(&n)
	return n, err
}

func (r *RequestRepo) CountConfirmedBatch(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT event_id, COUNT(*) FROM requests
		WHERE event_id = ANY($1) AND status = 'CONFIRMED'
		GROUP BY event_id
	`, eventIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		var n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}

func (r *RequestRepo) HasConfirmed(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM requests
			WHERE requester_id = $1 AND event_id = $2 AND status = 'CONFIRMED')
	`, userID, eventID).Scan(&ok)
	return ok, err
}
