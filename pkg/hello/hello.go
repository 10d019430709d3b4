package hello

import (
	"context"
	"fmt"
	"time"
)

// DateFormat is the textual wire form of a calendar date.
const DateFormat = "2006-01-02"

// Date is a calendar date with no time component, fixed to UTC midnight.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return d.Format(DateFormat)
}

// MarshalJSON encodes the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateFormat) + `"`), nil
}

// UnmarshalJSON decodes a quoted YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid date value: %s", data)
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Record is the persisted value for one username.
type Record struct {
	DOB Date `json:"dob"`
}

// Store is the narrow persistence capability the handlers depend on.
// GetBirthday returns (nil, nil) when no record exists for the username;
// it does not distinguish why a record is absent. UpsertBirthday replaces
// the full value for the username; the underlying store guarantees
// single-key atomicity, so the last write to complete wins.
type Store interface {
	GetBirthday(ctx context.Context, username string) (*Record, error)
	UpsertBirthday(ctx context.Context, username string, dob Date) error
}
