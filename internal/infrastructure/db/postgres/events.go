package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventhub/platform/internal/application/event"
	"github.com/eventhub/platform/internal/domain"
)

type EventRepo struct {
	pool *pgxpool.Pool
}

func NewEventRepo(pool *pgxpool.Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

const eventColumns = `
e.id, e.title, e.annotation, e.description, e.event_date,
e.paid, e.participant_limit, e.request_moderation, e.state,
e.created_at, e.published_at, e.initiator_id, e.category_id,
l.id, l.lat, l.lon`

const selectEventSQL = `
SELECT ` + eventColumns + `
FROM events e
JOIN locations l ON l.id = e.location_id`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	var state string
	err := row.Scan(
		&e.ID, &e.Title, &e.Annotation, &e.Description, &e.EventDate,
		&e.Paid, &e.ParticipantLimit, &e.RequestModeration, &state,
		&e.CreatedOn, &e.PublishedOn, &e.InitiatorID, &e.CategoryID,
		&e.Location.ID, &e.Location.Lat, &e.Location.Lon,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("event not found")
	}
	if err != nil {
		return nil, err
	}
	e.State = domain.EventState(state)
	if !e.State.Valid() {
		return nil, fmt.Errorf("invalid event state in db: %q", state)
	}
	return &e, nil
}

func collectEvents(rows pgx.Rows) ([]*domain.Event, error) {
	defer rows.Close()
	var out []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *EventRepo) Create(ctx context.Context, e *domain.Event) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO events (
			id, title, annotation, description, event_date,
			paid, participant_limit, request_moderation, state,
			created_at, published_at, initiator_id, category_id, location_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		e.ID, e.Title, e.Annotation, e.Description, e.EventDate,
		e.Paid, e.ParticipantLimit, e.RequestModeration, string(e.State),
		e.CreatedOn, e.PublishedOn, e.InitiatorID, e.CategoryID, e.Location.ID,
	)
	return err
}

func (r *EventRepo) Update(ctx context.Context, e *domain.Event) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE events SET
			title=$2, annotation=$3, description=$4, event_date=$5,
			paid=$6, participant_limit=$7, request_moderation=$8, state=$9,
			published_at=$10, category_id=$11, location_id=$12
		WHERE id=$1
	`,
		e.ID, e.Title, e.Annotation, e.Description, e.EventDate,
		e.Paid, e.ParticipantLimit, e.RequestModeration, string(e.State),
		e.PublishedOn, e.CategoryID, e.Location.ID,
	)
	return err
}

func (r *EventRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, selectEventSQL+` WHERE e.id = $1`, id))
}

func (r *EventRepo) GetByIDAndInitiator(ctx context.Context, id, initiatorID uuid.UUID) (*domain.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, selectEventSQL+` WHERE e.id = $1 AND e.initiator_id = $2`, id, initiatorID))
}

func (r *EventRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, selectEventSQL+` WHERE e.id = ANY($1) ORDER BY e.event_date DESC`, ids)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

func (r *EventRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, from, size int) ([]*domain.Event, error) {
	from, size = normalizePage(from, size)
	rows, err := r.pool.Query(ctx,
		selectEventSQL+` WHERE e.initiator_id = $1 ORDER BY e.created_at DESC LIMIT $2 OFFSET $3`,
		ownerID, size, from,
	)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

func (r *EventRepo) ExistsByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM events WHERE category_id = $1)`, categoryID,
	).Scan(&exists)
	return exists, err
}

// Search serves the public catalogue: published events only, filtered and
// paged in SQL. View-count ordering happens above, after enrichment.
func (r *EventRepo) Search(ctx context.Context, f event.SearchFilter) ([]*domain.Event, error) {
	var (
		b    strings.Builder
		args []any
	)
	b.WriteString(selectEventSQL)
	b.WriteString(` WHERE e.state = 'PUBLISHED'`)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if text := strings.TrimSpace(f.Text); text != "" {
		p := arg("%" + text + "%")
		fmt.Fprintf(&b, ` AND (e.annotation ILIKE %s OR e.description ILIKE %s)`, p, p)
	}
	if len(f.CategoryIDs) > 0 {
		fmt.Fprintf(&b, ` AND e.category_id = ANY(%s)`, arg(f.CategoryIDs))
	}
	if f.Paid != nil {
		fmt.Fprintf(&b, ` AND e.paid = %s`, arg(*f.Paid))
	}
	if f.RangeStart != nil {
		fmt.Fprintf(&b, ` AND e.event_date >= %s`, arg(*f.RangeStart))
	}
	if f.RangeEnd != nil {
		fmt.Fprintf(&b, ` AND e.event_date <= %s`, arg(*f.RangeEnd))
	}
	if f.OnlyAvailable {
		b.WriteString(` AND (e.participant_limit = 0 OR e.participant_limit > (
			SELECT COUNT(*) FROM requests r
			WHERE r.event_id = e.id AND r.status = 'CONFIRMED'))`)
	}

	from, size := normalizePage(f.From, f.Size)
	fmt.Fprintf(&b, ` ORDER BY e.event_date DESC LIMIT %s OFFSET %s`, arg(size), arg(from))

	rows, err := r.pool.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

func (r *EventRepo) AdminSearch(ctx context.Context, f event.AdminFilter) ([]*domain.Event, error) {
	var (
		b    strings.Builder
		args []any
	)
	b.WriteString(selectEventSQL)
	b.WriteString(` WHERE 1=1`)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(f.UserIDs) > 0 {
		fmt.Fprintf(&b, ` AND e.initiator_id = ANY(%s)`, arg(f.UserIDs))
	}
	if len(f.States) > 0 {
		states := make([]string, 0, len(f.States))
		for _, s := range f.States {
			states = append(states, string(s))
		}
		fmt.Fprintf(&b, ` AND e.state = ANY(%s)`, arg(states))
	}
	if len(f.CategoryIDs) > 0 {
		fmt.Fprintf(&b, ` AND e.category_id = ANY(%s)`, arg(f.CategoryIDs))
	}
	if f.RangeStart != nil {
		fmt.Fprintf(&b, ` AND e.event_date >= %s`, arg(*f.RangeStart))
	}
	if f.RangeEnd != nil {
		fmt.Fprintf(&b, ` AND e.event_date <= %s`, arg(*f.RangeEnd))
	}

	from, size := normalizePage(f.From, f.Size)
	fmt.Fprintf(&b, ` ORDER BY e.created_at ASC LIMIT %s OFFSET %s`, arg(size), arg(from))

	rows, err := r.pool.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

func normalizePage(from, size int) (int, int) {
	if from < 0 {
		from = 0
	}
	if size <= 0 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return from, size
}
