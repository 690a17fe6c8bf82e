package stats

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Repository persists hits in postgres via database/sql.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const hitsSchema = `
CREATE TABLE IF NOT EXISTS endpoint_hits (
    id          BIGSERIAL PRIMARY KEY,
    app         TEXT NOT NULL,
    uri         TEXT NOT NULL,
    ip          TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_hits_created ON endpoint_hits (created_at);
CREATE INDEX IF NOT EXISTS idx_hits_uri ON endpoint_hits (uri);`

func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, hitsSchema)
	return err
}

func (r *Repository) SaveHit(ctx context.Context, hit EndpointHit) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO endpoint_hits (app, uri, ip, created_at) VALUES ($1, $2, $3, $4)`,
		hit.App, hit.URI, hit.IP, hit.Timestamp.Time().UTC())
	return err
}

// Aggregate counts hits per (app, uri) inside the window, most viewed first.
// With unique set, each ip counts once per endpoint.
func (r *Repository) Aggregate(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]ViewStats, error) {
	var b strings.Builder
	b.WriteString(`SELECT app, uri, `)
	if unique {
		b.WriteString(`COUNT(DISTINCT ip)`)
	} else {
		b.WriteString(`COUNT(ip)`)
	}
	b.WriteString(` AS hits FROM endpoint_hits WHERE created_at BETWEEN $1 AND $2`)

	args := []any{start.UTC(), end.UTC()}
	if len(uris) > 0 {
		b.WriteString(` AND uri = ANY($3)`)
		args = append(args, pq.Array(uris))
	}
	b.WriteString(` GROUP BY app, uri ORDER BY hits DESC`)

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ViewStats
	for rows.Next() {
		var v ViewStats
		if err := rows.Scan(&v.App, &v.URI, &v.Hits); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
