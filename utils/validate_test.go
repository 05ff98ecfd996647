package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"first.last@example.com",
		"x+tag@sub.domain.org",
	}
	for _, e := range valid {
		assert.True(t, ValidEmail(e), e)
	}

	invalid := []string{
		"",
		"plain",
		"@nodomain.com",
		"two@@ats.com",
		"a@b@c.com",
		"nodot@domain",
		"trailingdot@domain.",
		"has space@domain.com",
	}
	for _, e := range invalid {
		assert.False(t, ValidEmail(e), e)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"5555555555":       "+15555555555",
		"(555) 555-5555":   "+15555555555",
		"+1 555 555 5555":  "+15555555555",
		"+44 20 7946 0958": "+442079460958",
		"555-1234":         "5551234", // not 10 digits, left as-is
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePhone(in), in)
	}
}

func TestAgeExactCalendarSemantics(t *testing.T) {
	dob := time.Date(2000, 6, 15, 0, 0, 0, 0, time.Local)

	dayBefore := time.Date(2021, 6, 14, 0, 0, 0, 0, time.Local)
	assert.Equal(t, 20, Age(dob, dayBefore))

	birthday := time.Date(2021, 6, 15, 0, 0, 0, 0, time.Local)
	assert.Equal(t, 21, Age(dob, birthday))

	dayAfter := time.Date(2021, 6, 16, 0, 0, 0, 0, time.Local)
	assert.Equal(t, 21, Age(dob, dayAfter))

	earlierMonth := time.Date(2021, 5, 30, 0, 0, 0, 0, time.Local)
	assert.Equal(t, 20, Age(dob, earlierMonth))

	laterMonth := time.Date(2021, 7, 1, 0, 0, 0, 0, time.Local)
	assert.Equal(t, 21, Age(dob, laterMonth))
}

func TestParseDate(t *testing.T) {
	_, ok := ParseDate("")
	assert.False(t, ok)

	_, ok = ParseDate("06/15/2000")
	assert.False(t, ok)

	d, ok := ParseDate("2000-06-15")
	assert.True(t, ok)
	assert.Equal(t, 2000, d.Year())
	assert.Equal(t, time.June, d.Month())
	assert.Equal(t, 15, d.Day())
}

func TestIsFriOrSat(t *testing.T) {
	assert.True(t, IsFriOrSat("2026-09-04"))  // Friday
	assert.True(t, IsFriOrSat("2026-09-05"))  // Saturday
	assert.False(t, IsFriOrSat("2026-09-06")) // Sunday
	assert.False(t, IsFriOrSat("2026-09-07")) // Monday
	assert.False(t, IsFriOrSat(""))
	assert.False(t, IsFriOrSat("not-a-date"))
}
