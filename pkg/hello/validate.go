package hello

import (
	"regexp"
	"time"

	"github.com/birthdaysvc/birthdayd/pkg/errors"
)

// MaxUsernameLength bounds the identity key.
const MaxUsernameLength = 64

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z]+$`)
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	minDateOfBirth = NewDate(1900, time.January, 1)
)

// ValidateUsername checks a raw path segment against the username rules and
// returns it unchanged on success. Case is preserved; no normalization.
func ValidateUsername(raw string) (string, error) {
	if raw == "" {
		return "", errors.New(errors.ErrCodeEmptyInput,
			"Username should not be empty.")
	}
	if !usernamePattern.MatchString(raw) {
		return "", errors.New(errors.ErrCodeInvalidCharacters,
			"Invalid username. Only letters are allowed.")
	}
	if len(raw) > MaxUsernameLength {
		return "", errors.New(errors.ErrCodeOutOfRange,
			"Invalid username. Maximum length is 64 characters.")
	}
	return raw, nil
}

// ValidateDateOfBirth parses and validates a date-of-birth string. The
// syntactic shape is checked before calendar validity so a malformed string
// and an impossible date fail differently. The date must lie in
// [1900-01-01, now); now itself is rejected. The reference date is injected
// so the rule is deterministic under test.
func ValidateDateOfBirth(raw string, now Date) (Date, error) {
	if !datePattern.MatchString(raw) {
		return Date{}, errors.New(errors.ErrCodeBadFormat,
			"Invalid date format. Valid format: YYYY-MM-DD")
	}

	date, err := ParseDate(raw)
	if err != nil {
		return Date{}, errors.Wrap(errors.ErrCodeUnparsableDate,
			"Invalid date", err)
	}

	if date.Before(minDateOfBirth.Time) || !date.Before(now.Time) {
		return Date{}, errors.New(errors.ErrCodeOutOfRange,
			"Invalid date of birth. The date should be between 1900-01-01 and today.")
	}

	return date, nil
}
