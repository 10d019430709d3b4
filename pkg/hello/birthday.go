package hello

import (
	"fmt"
	"time"
)

// Describe returns the greeting for a user's next birthday relative to now.
// The date of birth is projected onto the current year; if that occurrence
// is today the message is a plain happy-birthday, if it has already passed
// the projection moves to next year and the message counts the whole days
// remaining.
//
// A Feb-29 date of birth is clamped to Feb 28 in non-leap years, so the
// greeting never lands after the anniversary. The clamp is explicit because
// time.Date would silently normalize Feb 29 to Mar 1.
func Describe(username string, dob, now Date) string {
	occurrence := projectOntoYear(dob, now.Year())
	if occurrence.Equal(now.Time) {
		return fmt.Sprintf("Hello, %s! Happy birthday!", username)
	}

	if occurrence.Before(now.Time) {
		occurrence = projectOntoYear(dob, now.Year()+1)
	}

	days := int(occurrence.Sub(now.Time) / (24 * time.Hour))
	return fmt.Sprintf("Hello, %s! Your birthday is in %d day(s)", username, days)
}

// projectOntoYear replaces the year of a date of birth, clamping Feb 29 to
// Feb 28 when the target year is not a leap year.
func projectOntoYear(dob Date, year int) time.Time {
	month, day := dob.Month(), dob.Day()
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
