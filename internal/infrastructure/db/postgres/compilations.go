package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventhub/platform/internal/domain"
)

type CompilationRepo struct {
	pool *pgxpool.Pool
}

func NewCompilationRepo(pool *pgxpool.Pool) *CompilationRepo {
	return &CompilationRepo{pool: pool}
}

func (r *CompilationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Compilation, error) {
	var c domain.Compilation
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, pinned FROM compilations WHERE id = $1`, id,
	).Scan(&c.ID, &c.Title, &c.Pinned)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("compilation not found")
	}
	if err != nil {
		return nil, err
	}
	if c.EventIDs, err = r.eventIDs(ctx, c.ID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompilationRepo) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM compilations WHERE title = $1)`, title,
	).Scan(&exists)
	return exists, err
}

func (r *CompilationRepo) Create(ctx context.Context, c *domain.Compilation) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO compilations (id, title, pinned) VALUES ($1, $2, $3)`,
		c.ID, c.Title, c.Pinned,
	); err != nil {
		return err
	}
	if err := insertMembers(ctx, tx, c.ID, c.EventIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *CompilationRepo) Update(ctx context.Context, c *domain.Compilation) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE compilations SET title = $2, pinned = $3 WHERE id = $1`,
		c.ID, c.Title, c.Pinned,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM compilation_events WHERE compilation_id = $1`, c.ID,
	); err != nil {
		return err
	}
	if err := insertMembers(ctx, tx, c.ID, c.EventIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *CompilationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM compilations WHERE id = $1`, id)
	return err
}

func (r *CompilationRepo) List(ctx context.Context, pinned *bool, from, size int) ([]*domain.Compilation, error) {
	from, size = normalizePage(from, size)

	var (
		rows pgx.Rows
		err  error
	)
	if pinned != nil {
		rows, err = r.pool.Query(ctx,
			`SELECT id, title, pinned FROM compilations WHERE pinned = $1 ORDER BY title LIMIT $2 OFFSET $3`,
			*pinned, size, from)
	} else {
		rows, err = r.pool.Query(ctx,
			`SELECT id, title, pinned FROM compilations ORDER BY title LIMIT $1 OFFSET $2`,
			size, from)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Compilation
	for rows.Next() {
		var c domain.Compilation
		if err := rows.Scan(&c.ID, &c.Title, &c.Pinned); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range out {
		if c.EventIDs, err = r.eventIDs(ctx, c.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *CompilationRepo) eventIDs(ctx context.Context, compilationID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT event_id FROM compilation_events WHERE compilation_id = $1 ORDER BY position`,
		compilationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func insertMembers(ctx context.Context, tx pgx.Tx, compilationID uuid.UUID, eventIDs []uuid.UUID) error {
	for i, id := range eventIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO compilation_events (compilation_id, event_id, position) VALUES ($1, $2, $3)`,
			compilationID, id, i,
		); err != nil {
			return err
		}
	}
	return nil
}
