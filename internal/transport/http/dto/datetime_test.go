package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTimeMarshal(t *testing.T) {
	d := DateTime(time.Date(2025, 6, 1, 12, 30, 5, 0, time.UTC))
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-01 12:30:05"`, string(raw))
}

func TestDateTimeMarshalNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	d := DateTime(time.Date(2025, 6, 1, 15, 0, 0, 0, loc))
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-01 12:00:00"`, string(raw))
}

func TestDateTimeUnmarshal(t *testing.T) {
	var d DateTime
	require.NoError(t, json.Unmarshal([]byte(`"2025-06-01 12:30:05"`), &d))
	assert.Equal(t, time.Date(2025, 6, 1, 12, 30, 5, 0, time.UTC), d.Time())
}

func TestDateTimeUnmarshalRejectsBadInput(t *testing.T) {
	var d DateTime
	assert.Error(t, json.Unmarshal([]byte(`"2025-06-01T12:30:05Z"`), &d), "RFC3339 is not the wire format")
	assert.Error(t, json.Unmarshal([]byte(`1748780405`), &d), "numbers are not accepted")
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2025-06-01 12:30:05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 30, 5, 0, time.UTC), got)

	_, err = ParseDateTime("01.06.2025")
	assert.Error(t, err)
}
