package utils

import (
	"strings"
	"time"
)

// ValidEmail reports whether e looks like a deliverable address: exactly one
// "@", a non-empty local part, and a domain containing a dot. Matches the
// frontend check so server and client never disagree on eligibility.
func ValidEmail(e string) bool {
	e = strings.TrimSpace(e)
	at := strings.Index(e, "@")
	if at <= 0 || at != strings.LastIndex(e, "@") {
		return false
	}
	domain := e[at+1:]
	dot := strings.Index(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	return !strings.ContainsAny(e, " \t\r\n")
}

// NormalizePhone strips everything except digits and a leading "+".
// Bare 10-digit numbers are assumed US and prefixed with +1.
func NormalizePhone(p string) string {
	var b strings.Builder
	for i, r := range p {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(digits, "+") {
		return digits
	}
	if len(digits) == 10 {
		return "+1" + digits
	}
	return digits
}

// Age returns whole calendar years between dob and now, decrementing when
// now's (month, day) precedes dob's. This is exact calendar age, not
// floor(days/365).
func Age(dob, now time.Time) int {
	a := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		a--
	}
	return a
}

// ParseDate parses a YYYY-MM-DD form date. Empty or malformed input returns a
// zero time and false.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsFriOrSat reports whether a YYYY-MM-DD date falls on a Friday or Saturday
// in local time. Unparseable or empty dates are never valid.
func IsFriOrSat(s string) bool {
	d, ok := ParseDate(s)
	if !ok {
		return false
	}
	wd := d.Weekday()
	return wd == time.Friday || wd == time.Saturday
}
