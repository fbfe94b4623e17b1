package timex

import (
	"bytes"
	"fmt"
	"time"
)

// localDateTimeLayouts are the zone-less ISO-8601 forms the backend emits for
// created/updated timestamps. They are interpreted as UTC.
var localDateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Timestamp is a point in time decoded from either RFC 3339 or a zone-less
// local date-time string.
type Timestamp struct {
	time.Time
}

// NewTimestamp returns a pointer suitable for optional model fields.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Time.Format(time.RFC3339Nano) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("timestamp must be a JSON string, got %s", b)
	}
	s := string(b[1 : len(b)-1])

	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	for _, layout := range localDateTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp format %q", s)
}

// String renders the timestamp for humans.
func (t Timestamp) String() string {
	return t.Time.Format("2006-01-02 15:04")
}
