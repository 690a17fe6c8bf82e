package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/platform/internal/domain"
)

func TestErr(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{
			name:       "validation maps to 400",
			err:        domain.ErrValidation("size must be positive"),
			wantStatus: http.StatusBadRequest,
			wantReason: "Incorrectly made request.",
		},
		{
			name:       "not found maps to 404",
			err:        domain.ErrNotFound("event not found"),
			wantStatus: http.StatusNotFound,
			wantReason: "The required object was not found.",
		},
		{
			name:       "conflict maps to 409",
			err:        domain.ErrConflict("participant limit reached"),
			wantStatus: http.StatusConflict,
			wantReason: "For the requested operation the conditions are not met.",
		},
		{
			name:       "anything else maps to 500",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantReason: "Internal server error.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Err(rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

			var body ApiError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, http.StatusText(tc.wantStatus), body.Status)
			assert.Equal(t, tc.wantReason, body.Reason)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestErrHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	Err(rec, errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))

	var body ApiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal error", body.Message)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestErrUnwrapsWrappedAppErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := errors.Join(errors.New("submit request"), domain.ErrConflict("duplicate request"))
	Err(rec, wrapped)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"abc"}`, rec.Body.String())
}
