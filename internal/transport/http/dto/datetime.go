package dto

import (
	"fmt"
	"strconv"
	"time"
)

// TimeLayout is the JSON timestamp format of the whole API.
const TimeLayout = "2006-01-02 15:04:05"

// DateTime marshals as "2006-01-02 15:04:05" strings.
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

// ParseDateTime parses an API query-string timestamp.
func ParseDateTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}
