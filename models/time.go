package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// requestTimeLayouts are tried in order. Layouts without a zone are read as UTC.
var requestTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// RequestTime accepts the timestamp shapes clients commonly send, including
// ISO-8601 without a zone offset.
type RequestTime struct {
	time.Time
}

func ParseRequestTime(s string) (time.Time, error) {
	for _, layout := range requestTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s)
}

func (rt *RequestTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("time must be a string: %w", err)
	}
	t, err := ParseRequestTime(s)
	if err != nil {
		return err
	}
	rt.Time = t
	return nil
}

func (rt RequestTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(rt.Time)
}

// Ptr returns nil for a nil receiver so optional payload fields stay optional.
func (rt *RequestTime) Ptr() *time.Time {
	if rt == nil {
		return nil
	}
	t := rt.Time
	return &t
}
