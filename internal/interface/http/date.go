package handlers

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/oksasatya/planify/pkg/validation"
)

const dateLayout = "2006-01-02"

// optionalDate is a date field that tells absent, null and set apart. A present
// value is either a calendar date (YYYY-MM-DD, read as UTC midnight) or RFC 3339.
type optionalDate struct {
	Set   bool
	Value *time.Time
}

func (d *optionalDate) UnmarshalJSON(b []byte) error {
	d.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		d.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &validation.DateError{Value: string(b)}
	}
	if s == "" {
		d.Value = nil
		return nil
	}
	t, err := parseDate(s)
	if err != nil {
		return &validation.DateError{Value: s}
	}
	d.Value = &t
	return nil
}

// patch returns nil when the field was absent, which leaves the stored value untouched.
func (d optionalDate) patch() **time.Time {
	if !d.Set {
		return nil
	}
	v := d.Value
	return &v
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
