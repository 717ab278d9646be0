package ber

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DecodeUTCTime parses BER UTCTime content into a time.Time in UTC. Per
// spec.md §4.2, the two-digit year is mapped to the century per X.690's
// rule: 00-49 -> 2000-2049, 50-99 -> 1950-1999. Seconds are optional on
// input; the offset may be "Z" or "+HHMM"/"-HHMM".
func DecodeUTCTime(content []byte) (time.Time, error) {
	s := string(content)
	if len(s) < 11 {
		return time.Time{}, fmt.Errorf("ber: UTCTime %q too short", s)
	}
	yy, err := strconv.Atoi(s[0:2])
	if err != nil {
		return time.Time{}, fmt.Errorf("ber: UTCTime %q: bad year: %w", s, err)
	}
	year := 1950 + yy
	if yy < 50 {
		year = 2000 + yy
	}
	rest := s[2:]

	month, err := strconv.Atoi(rest[0:2])
	if err != nil {
		return time.Time{}, fmt.Errorf("ber: UTCTime %q: bad month: %w", s, err)
	}
	day, err := strconv.Atoi(rest[2:4])
	if err != nil {
		return time.Time{}, fmt.Errorf("ber: UTCTime %q: bad day: %w", s, err)
	}
	hour, err := strconv.Atoi(rest[4:6])
	if err != nil {
		return time.Time{}, fmt.Errorf("ber: UTCTime %q: bad hour: %w", s, err)
	}
	min, err := strconv.Atoi(rest[6:8])
	if err != nil {
		return time.Time{}, fmt.Errorf("ber: UTCTime %q: bad minute: %w", s, err)
	}

	tail := rest[8:]
	sec := 0
	if len(tail) > 0 && tail[0] >= '0' && tail[0] <= '9' {
		if len(tail) < 2 {
			return time.Time{}, fmt.Errorf("ber: UTCTime %q: truncated seconds", s)
		}
		sec, err = strconv.Atoi(tail[0:2])
		if err != nil {
			return time.Time{}, fmt.Errorf("ber: UTCTime %q: bad second: %w", s, err)
		}
		tail = tail[2:]
	}

	loc, err := parseOffset(tail)
	if err != nil {
		return time.Time{}, fmt.Errorf("ber: UTCTime %q: %w", s, err)
	}

	return normalizeLeapSecond(year, time.Month(month), day, hour, min, sec, loc), nil
}

// EncodeUTCTime renders t as canonical DER UTCTime: "YYMMDDHHMMSSZ" in UTC,
// seconds always present, per spec.md §4.2.
func EncodeUTCTime(t time.Time) []byte {
	u := t.UTC()
	year := u.Year() % 100
	return []byte(fmt.Sprintf("%02d%02d%02d%02d%02d%02dZ", year, int(u.Month()), u.Day(), u.Hour(), u.Minute(), u.Second()))
}

// DecodeGeneralizedTime parses BER GeneralizedTime content. It returns the
// parsed time in UTC and, separately, the fractional-second digits (if
// any) exactly as written, since DER requires no trailing zero but BER
// content may still carry one on decode.
func DecodeGeneralizedTime(content []byte) (time.Time, string, error) {
	s := string(content)
	if len(s) < 10 {
		return time.Time{}, "", fmt.Errorf("ber: GeneralizedTime %q too short", s)
	}
	year, err := strconv.Atoi(s[0:4])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("ber: GeneralizedTime %q: bad year: %w", s, err)
	}
	month, err := strconv.Atoi(s[4:6])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("ber: GeneralizedTime %q: bad month: %w", s, err)
	}
	day, err := strconv.Atoi(s[6:8])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("ber: GeneralizedTime %q: bad day: %w", s, err)
	}
	hour, err := strconv.Atoi(s[8:10])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("ber: GeneralizedTime %q: bad hour: %w", s, err)
	}
	rest := s[10:]

	min, sec := 0, 0
	if len(rest) >= 2 && rest[0] >= '0' && rest[0] <= '9' {
		min, err = strconv.Atoi(rest[0:2])
		if err != nil {
			return time.Time{}, "", fmt.Errorf("ber: GeneralizedTime %q: bad minute: %w", s, err)
		}
		rest = rest[2:]
		if len(rest) >= 2 && rest[0] >= '0' && rest[0] <= '9' {
			sec, err = strconv.Atoi(rest[0:2])
			if err != nil {
				return time.Time{}, "", fmt.Errorf("ber: GeneralizedTime %q: bad second: %w", s, err)
			}
			rest = rest[2:]
		}
	}

	frac := ""
	if len(rest) > 0 && (rest[0] == '.' || rest[0] == ',') {
		end := 1
		for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
			end++
		}
		frac = rest[1:end]
		if len(frac) > 7 {
			frac = frac[:7]
		}
		rest = rest[end:]
	}

	loc, err := parseOffset(rest)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("ber: GeneralizedTime %q: %w", s, err)
	}

	return normalizeLeapSecond(year, time.Month(month), day, hour, min, sec, loc), frac, nil
}

// EncodeGeneralizedTime renders t as canonical DER GeneralizedTime:
// "YYYYMMDDHHMMSS[.frac]Z" in UTC. frac, if non-empty, must hold only
// digits and is written with trailing zeros stripped, per spec.md §4.2's
// "no unnecessary trailing zero" rule.
func EncodeGeneralizedTime(t time.Time, frac string) []byte {
	u := t.UTC()
	frac = strings.TrimRight(frac, "0")
	var b strings.Builder
	fmt.Fprintf(&b, "%04d%02d%02d%02d%02d%02d", u.Year(), int(u.Month()), u.Day(), u.Hour(), u.Minute(), u.Second())
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	b.WriteByte('Z')
	return []byte(b.String())
}

// parseOffset parses a trailing "Z", "+HHMM", "-HHMM", or empty (local,
// treated as UTC per spec.md's "no local time" decision) time-zone suffix.
func parseOffset(s string) (*time.Location, error) {
	switch {
	case s == "" || s == "Z":
		return time.UTC, nil
	case len(s) == 5 && (s[0] == '+' || s[0] == '-'):
		hh, err := strconv.Atoi(s[1:3])
		if err != nil {
			return nil, fmt.Errorf("bad offset %q", s)
		}
		mm, err := strconv.Atoi(s[3:5])
		if err != nil {
			return nil, fmt.Errorf("bad offset %q", s)
		}
		sign := 1
		if s[0] == '-' {
			sign = -1
		}
		return time.FixedZone(s, sign*(hh*3600+mm*60)), nil
	default:
		return nil, fmt.Errorf("unrecognised time-zone suffix %q", s)
	}
}

// normalizeLeapSecond builds a UTC time.Time from calendar fields, clamping
// a positive leap second (sec == 60) down to 59 since time.Time has no
// representation for it, per spec.md:75's leap-second-coercion rule.
// time.Date itself already normalises any other out-of-range field via
// the proleptic Gregorian calendar.
func normalizeLeapSecond(year int, month time.Month, day, hour, min, sec int, loc *time.Location) time.Time {
	if sec == 60 {
		sec = 59
	}
	return time.Date(year, month, day, hour, min, sec, 0, loc).UTC()
}
