package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

var flexTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// FlexTime is a request date that accepts an RFC 3339 timestamp, a bare
// YYYY-MM-DD date (midnight UTC) or unix milliseconds. Decoding never fails;
// an unparseable value is kept and reported by validation instead.
type FlexTime struct {
	t     time.Time
	raw   string
	valid bool
}

// NewFlexTime wraps an already parsed time.
func NewFlexTime(t time.Time) FlexTime {
	return FlexTime{t: t.UTC(), raw: t.UTC().Format(time.RFC3339Nano), valid: true}
}

func (f *FlexTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	f.raw = string(data)
	f.valid = false

	if len(data) > 0 && data[0] != '"' {
		var ms json.Number
		if err := json.Unmarshal(data, &ms); err == nil {
			if n, err := ms.Int64(); err == nil {
				f.t = time.UnixMilli(n).UTC()
				f.valid = true
			}
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	f.raw = s
	if t, ok := ParseFlexTime(s); ok {
		f.t = t
		f.valid = true
	}
	return nil
}

func (f FlexTime) MarshalJSON() ([]byte, error) {
	if !f.valid {
		return json.Marshal(f.raw)
	}
	return json.Marshal(f.t.Format(time.RFC3339Nano))
}

// Time returns the parsed instant in UTC.
func (f FlexTime) Time() time.Time { return f.t }

// Valid reports whether the input could be parsed.
func (f FlexTime) Valid() bool { return f.valid }

// Raw returns the original input.
func (f FlexTime) Raw() string { return f.raw }

// ParseFlexTime parses the string forms FlexTime accepts.
func ParseFlexTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range flexTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
