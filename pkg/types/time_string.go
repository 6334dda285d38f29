package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat is returned when a time string does not match "HH:MM"
var ErrInvalidTimeFormat = errors.New("types: invalid time string format, expected HH:MM")

const timeStringLayout = "15:04"

// TimeString represents a wall-clock time of day in "HH:MM" format.
// Stored as a plain string so it maps directly onto a Postgres TIME column
// and JSON payloads without custom marshalling.
type TimeString string

// NewTimeString creates a TimeString from the wall-clock part of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeStringLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return TimeString(t.Format(timeStringLayout)), nil
}

// NewTimeStringFromMinutes creates a TimeString from minutes since midnight.
// Values are clamped into a single day (0 <= m < 1440 expected).
func NewTimeStringFromMinutes(m int) (TimeString, error) {
	if m < 0 || m >= 24*60 {
		return "", fmt.Errorf("%w: %d minutes is outside of a day", ErrInvalidTimeFormat, m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// String returns the "HH:MM" representation
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero returns true for the empty value
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate checks that the value is a well-formed "HH:MM" string
func (ts TimeString) Validate() error {
	_, err := time.Parse(timeStringLayout, string(ts))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(ts))
	}
	return nil
}

// Minutes converts the value to minutes since midnight
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(timeStringLayout, string(ts))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(ts))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddMinutes returns a new TimeString shifted forward by m minutes.
// The result is not allowed to cross midnight.
func (ts TimeString) AddMinutes(m int) (TimeString, error) {
	current, err := ts.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + m)
}

// IsBefore reports whether ts is strictly earlier than other.
// Malformed values compare lexicographically, which for valid zero-padded
// "HH:MM" strings is equivalent to comparing minutes.
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter reports whether ts is strictly later than other
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}

// Scan implements sql.Scanner. Postgres renders TIME columns as "HH:MM:SS";
// the seconds part is dropped since the engine works at minute precision.
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case string:
		return ts.scanString(v)
	case []byte:
		return ts.scanString(string(v))
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeFormat, src)
	}
}

func (ts *TimeString) scanString(s string) error {
	if len(s) > len(timeStringLayout) {
		s = s[:len(timeStringLayout)]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// Value implements driver.Valuer
func (ts TimeString) Value() (driver.Value, error) {
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// ToDateTime combines a calendar date with the wall-clock value into a
// single timestamp in the date's location
func (ts TimeString) ToDateTime(date time.Time) (time.Time, error) {
	m, err := ts.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, date.Location()), nil
}
