package models

import (
	"encoding/json"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// FlexibleDate is a custom time type that can unmarshal both RFC3339 and "YYYY-MM-DD" formats
type FlexibleDate struct {
	time.Time
}

// NewDate builds a date-only FlexibleDate in UTC
func NewDate(year int, month time.Month, day int) FlexibleDate {
	return FlexibleDate{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexibleDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		f.Time = time.Time{}
		return nil
	}

	// Try parsing as RFC3339 full timestamp first
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		f.Time = t
		return nil
	}

	// If that fails, try parsing as a date-only string
	t, err = time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	f.Time = t
	return nil
}

// MarshalJSON writes date-only values back in the upstream "YYYY-MM-DD" form.
func (f FlexibleDate) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return []byte("null"), nil
	}
	t := f.Time.UTC()
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return json.Marshal(t.Format(dateLayout))
	}
	return json.Marshal(f.Time)
}
