package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventhub/platform/internal/domain"
)

type CategoryRepo struct {
	pool *pgxpool.Pool
}

func NewCategoryRepo(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("category not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return scanCategory(r.pool.QueryRow(ctx,
		`SELECT id, name FROM categories WHERE id = $1`, id))
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	return scanCategory(r.pool.QueryRow(ctx,
		`SELECT id, name FROM categories WHERE name = $1`, name))
}

func (r *CategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2)`, c.ID, c.Name)
	return err
}

func (r *CategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE categories SET name = $2 WHERE id = $1`, c.ID, c.Name)
	return err
}

func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}

func (r *CategoryRepo) List(ctx context.Context, from, size int) ([]*domain.Category, error) {
	from, size = normalizePage(from, size)
	rows, err := r.pool.Query(ctx,
		`SELECT id, name FROM categories ORDER BY name LIMIT $1 OFFSET $2`, size, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
