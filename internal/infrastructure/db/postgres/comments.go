package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventhub/platform/internal/domain"
)

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

const commentColumns = `id, text, author_id, event_id, created_at, status`

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var c domain.Comment
	var status string
	err := row.Scan(&c.ID, &c.Text, &c.AuthorID, &c.EventID, &c.CreatedOn, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("comment not found")
	}
	if err != nil {
		return nil, err
	}
	c.Status = domain.CommentStatus(status)
	return &c, nil
}

func (r *CommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return scanComment(r.pool.QueryRow(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
}

func (r *CommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO comments (id, text, author_id, event_id, created_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.ID, c.Text, c.AuthorID, c.EventID, c.CreatedOn, string(c.Status))
	return err
}

func (r *CommentRepo) Update(ctx context.Context, c *domain.Comment) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE comments SET text = $2, status = $3 WHERE id = $1`,
		c.ID, c.Text, string(c.Status))
	return err
}

func (r *CommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	return err
}

func (r *CommentRepo) ListPending(ctx context.Context) ([]*domain.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE status = 'PENDING' ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
