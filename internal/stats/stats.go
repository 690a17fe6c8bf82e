// Package stats implements the hit-counting microservice: endpoint hits are
// recorded per (app, uri, ip) and aggregated into view statistics over a time
// range. The main service consumes it over HTTP via infrastructure/stats.
package stats

import (
	"fmt"
	"strconv"
	"time"
)

// TimeLayout is the wire format for every timestamp the stat API exchanges.
const TimeLayout = "2006-01-02 15:04:05"

// DateTime is a time.Time that marshals as "2006-01-02 15:04:05" JSON
// strings instead of RFC 3339.
type DateTime time.Time

func (d DateTime) Time() time.Time { return time.Time(d) }

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(time.Time(d).UTC().Format(TimeLayout))), nil
}

func (d *DateTime) UnmarshalJSON(raw []byte) error {
	s, err := strconv.Unquote(string(raw))
	if err != nil {
		return fmt.Errorf("datetime must be a string: %w", err)
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return fmt.Errorf("datetime must look like %q: %w", TimeLayout, err)
	}
	*d = DateTime(t)
	return nil
}

// EndpointHit is one recorded access to an endpoint.
type EndpointHit struct {
	App       string   `json:"app"`
	URI       string   `json:"uri"`
	IP        string   `json:"ip"`
	Timestamp DateTime `json:"timestamp"`
}

// ViewStats is an aggregated hit count per (app, uri).
type ViewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}
