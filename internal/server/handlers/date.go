package handlers

import (
	"encoding/json"
	"fmt"
	"time"
)

// dateOnlyLayout is what HTML date inputs submit.
const dateOnlyLayout = "2006-01-02"

// requestDate accepts RFC3339 timestamps and bare dates. A bare date is
// midnight UTC and an empty string counts as no date.
type requestDate struct {
	time.Time
}

func (d *requestDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{time.RFC3339Nano, dateOnlyLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC3339", s)
}

// ptr returns nil when no date was sent.
func (d *requestDate) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.UTC()
	return &t
}
