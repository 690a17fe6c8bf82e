package handlers

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eventhub/platform/internal/domain"
	"github.com/eventhub/platform/internal/transport/http/dto"
)

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.ErrValidationMeta("invalid path param", map[string]string{
			name: "must be a valid uuid",
		})
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.ErrValidationMeta("invalid query param", map[string]string{
			name: "must be an integer",
		})
	}
	return n, nil
}

func queryBool(r *http.Request, name string) (*bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, domain.ErrValidationMeta("invalid query param", map[string]string{
			name: "must be a boolean",
		})
	}
	return &b, nil
}

func queryTime(r *http.Request, name string) (*time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	t, err := dto.ParseDateTime(v)
	if err != nil {
		return nil, domain.ErrValidationMeta("invalid query param", map[string]string{
			name: "must look like " + dto.TimeLayout,
		})
	}
	return &t, nil
}

// queryUUIDs reads a repeatable or comma-separated uuid list parameter.
func queryUUIDs(r *http.Request, name string) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, raw := range r.URL.Query()[name] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return nil, domain.ErrValidationMeta("invalid query param", map[string]string{
					name: "must be a list of uuids",
				})
			}
			out = append(out, id)
		}
	}
	return out, nil
}

func clientIP(r *http.Request) string {
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}
