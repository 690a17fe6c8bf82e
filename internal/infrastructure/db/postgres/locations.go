package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventhub/platform/internal/domain"
)

type LocationRepo struct {
	pool *pgxpool.Pool
}

func NewLocationRepo(pool *pgxpool.Pool) *LocationRepo {
	return &LocationRepo{pool: pool}
}

// FindOrCreate deduplicates by exact coordinate pair so repeated submissions
// of the same venue share a row.
func (r *LocationRepo) FindOrCreate(ctx context.Context, lat, lon float64) (domain.Location, error) {
	loc := domain.Location{Lat: lat, Lon: lon}
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM locations WHERE lat = $1 AND lon = $2`, lat, lon,
	).Scan(&loc.ID)
	if err == nil {
		return loc, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Location{}, err
	}

	loc.ID = uuid.New()
	_, err = r.pool.Exec(ctx,
		`INSERT INTO locations (id, lat, lon) VALUES ($1, $2, $3)`,
		loc.ID, lat, lon,
	)
	if err != nil {
		return domain.Location{}, err
	}
	return loc, nil
}
