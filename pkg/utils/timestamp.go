package utils

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// localLayout is an ISO-8601 date-time without zone; such values are read as UTC
const localLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is a request time that accepts RFC 3339 or a zone-less local date-time
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses an RFC 3339 value or a zone-less local date-time
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(localLayout, value, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	value, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(value)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
