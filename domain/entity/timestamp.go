package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// StorageLayout is the text form timestamps are written in. It is fixed
// width and always UTC so that text columns sort chronologically.
const StorageLayout = "2006-01-02T15:04:05.000000000Z"

// parseLayouts are tried in order when reading a timestamp from text.
var parseLayouts = []string{
	StorageLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a UTC instant that round-trips through SQLite text columns,
// PostgreSQL TIMESTAMPTZ columns and RFC 3339 JSON.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to microseconds and converts it to UTC.
// PostgreSQL keeps microsecond precision, so values compare equal after a
// round trip through either driver.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Microsecond)}
}

// Now returns the current instant as a Timestamp.
func Now() Timestamp {
	return NewTimestamp(time.Now())
}

// ParseTimestamp parses the accepted text forms. Values without a zone are
// taken as UTC.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimestamp(t), nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

// Value implements driver.Valuer.
func (t Timestamp) Value() (driver.Value, error) {
	return t.UTC().Format(StorageLayout), nil
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		*t = NewTimestamp(v)
		return nil
	case string:
		parsed, err := ParseTimestamp(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := ParseTimestamp(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case int64:
		*t = NewTimestamp(time.Unix(v, 0))
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
}

// MarshalJSON writes the instant as an RFC 3339 string in UTC.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON accepts any of the text forms ParseTimestamp accepts.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
