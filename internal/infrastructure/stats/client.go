// Package stats is the HTTP client for the statistics service.
package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/eventhub/platform/internal/stats"
)

// Client implements the application's StatsClient port against the stats
// service REST API.
type Client struct {
	baseURL string
	app     string
	http    *http.Client
	now     func() time.Time
}

func New(baseURL, app string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		app:     app,
		http:    &http.Client{Timeout: 5 * time.Second},
		now:     time.Now,
	}
}

// RecordHit posts the hit in the background. A stats outage must never slow
// down or fail a public read.
func (c *Client) RecordHit(ctx context.Context, uri, ip string) {
	hit := stats.EndpointHit{
		App:       c.app,
		URI:       uri,
		IP:        ip,
		Timestamp: stats.DateTime(c.now().UTC()),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := c.postHit(ctx, hit); err != nil {
			zlog.Warn().Err(err).Str("uri", uri).Msg("stats hit not recorded")
		}
	}()
}

func (c *Client) postHit(ctx context.Context, hit stats.EndpointHit) error {
	body, err := json.Marshal(hit)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hit", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("stats service returned %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) Views(ctx context.Context, uris []string, start, end time.Time, uniqueIP bool) (map[string]int64, error) {
	q := url.Values{}
	q.Set("start", start.UTC().Format(stats.TimeLayout))
	q.Set("end", end.UTC().Format(stats.TimeLayout))
	for _, u := range uris {
		q.Add("uris", u)
	}
	if uniqueIP {
		q.Set("unique", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats service returned %d", resp.StatusCode)
	}

	var rows []stats.ViewStats
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.URI] = row.Hits
	}
	return out, nil
}
