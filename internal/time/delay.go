// This code was adapted from https://github.com/dapr/kit/tree/v0.15.4/
// Copyright (C) 2023 The Dapr Authors
// License: Apache2

package time

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/italypaleale/delayqueue"
)

var (
	errInvalidISO8601Duration = errors.New("unsupported ISO8601 duration format")
	errInvalidDelay           = errors.New("unsupported delay format")
)

// Units from the largest to the smallest
var unitsDesc = []delayqueue.TimeUnit{
	delayqueue.Hours,
	delayqueue.Minutes,
	delayqueue.Seconds,
	delayqueue.Milliseconds,
	delayqueue.Microseconds,
	delayqueue.Nanoseconds,
}

// ParseDelay parses a delay, returning the amount and its unit.
// It supports:
// - A number followed by a single unit, such as "1500ms", "2 s" or "5 minutes": the unit is preserved
// - A bare number, which is interpreted as milliseconds
// - Go duration strings with multiple components, such as "1m30s"
// - ISO8601 durations with days, weeks and time components, such as "PT1.5S"
// For the last two formats, the delay is returned in the largest unit that represents it exactly.
func ParseDelay(from string) (int64, delayqueue.TimeUnit, error) {
	from = strings.TrimSpace(from)
	if from == "" {
		return 0, delayqueue.Milliseconds, nil
	}

	// Bare numbers are milliseconds
	n, err := strconv.ParseInt(from, 10, 64)
	if err == nil {
		return n, delayqueue.Milliseconds, nil
	}

	// Number followed by a unit
	amount, unit, ok := parseAmountWithUnit(from)
	if ok {
		return amount, unit, nil
	}

	// ISO8601 duration
	d, err := ParseISO8601Duration(from)
	if err == nil {
		amount, unit = LargestUnit(d)
		return amount, unit, nil
	}

	// Go duration string
	d, err = time.ParseDuration(from)
	if err == nil {
		amount, unit = LargestUnit(d)
		return amount, unit, nil
	}

	return 0, 0, fmt.Errorf("%w: '%s'", errInvalidDelay, from)
}

// FormatDelay returns the string representation of a delay, which can be parsed by ParseDelay.
func FormatDelay(amount int64, unit delayqueue.TimeUnit) string {
	return strconv.FormatInt(amount, 10) + unit.String()
}

// LargestUnit returns the duration expressed in the largest unit that represents it exactly.
func LargestUnit(d time.Duration) (int64, delayqueue.TimeUnit) {
	if d == 0 {
		return 0, delayqueue.Milliseconds
	}

	for _, u := range unitsDesc {
		if d%u.Duration() == 0 {
			return int64(d / u.Duration()), u
		}
	}

	// Nanoseconds always match
	return int64(d), delayqueue.Nanoseconds
}

func parseAmountWithUnit(from string) (int64, delayqueue.TimeUnit, bool) {
	// Find where the number ends
	i := 0
	if i < len(from) && (from[i] == '-' || from[i] == '+') {
		i++
	}
	start := i
	for i < len(from) && from[i] >= '0' && from[i] <= '9' {
		i++
	}
	if i == start {
		return 0, 0, false
	}

	amount, err := strconv.ParseInt(from[:i], 10, 64)
	if err != nil {
		return 0, 0, false
	}

	// The rest must be a single unit, optionally separated by spaces
	rest := strings.TrimLeftFunc(from[i:], unicode.IsSpace)
	unit, err := delayqueue.ParseTimeUnit(rest)
	if err != nil {
		return 0, 0, false
	}

	return amount, unit, true
}

// ParseISO8601Duration parses an ISO8601 duration.
// Only components with a fixed length are supported: weeks, days (of 24 hours), hours, minutes, and seconds with up to 3 decimal digits.
func ParseISO8601Duration(from string) (d time.Duration, err error) {
	// Length must be at least 2 characters per specs
	l := len(from)
	if l < 2 {
		return 0, errInvalidISO8601Duration
	}

	// First character must be a "P"
	if from[0] != 'P' {
		return 0, errInvalidISO8601Duration
	}

	var (
		i, start      = 1, 1
		isParsingTime bool
		isDecimal     bool
		tmp           int
	)
	for i < l {
		switch from[i] {
		case 'T':
			if start != i {
				return 0, errInvalidISO8601Duration
			}
			isParsingTime = true
			start = i + 1

		case 'W':
			if isParsingTime || isDecimal || start == i {
				return 0, errInvalidISO8601Duration
			}
			tmp, err = strconv.Atoi(from[start:i])
			if err != nil {
				return 0, errInvalidISO8601Duration
			}
			d += time.Duration(tmp) * 7 * 24 * time.Hour
			start = i + 1

		case 'D':
			if isParsingTime || isDecimal || start == i {
				return 0, errInvalidISO8601Duration
			}
			tmp, err = strconv.Atoi(from[start:i])
			if err != nil {
				return 0, errInvalidISO8601Duration
			}
			d += time.Duration(tmp) * 24 * time.Hour
			start = i + 1

		case 'H':
			if !isParsingTime || isDecimal || start == i {
				return 0, errInvalidISO8601Duration
			}
			tmp, err = strconv.Atoi(from[start:i])
			if err != nil {
				return 0, errInvalidISO8601Duration
			}
			d += time.Duration(tmp) * time.Hour
			start = i + 1

		case 'M':
			// Months don't have a fixed length
			if !isParsingTime || isDecimal || start == i {
				return 0, errInvalidISO8601Duration
			}
			tmp, err = strconv.Atoi(from[start:i])
			if err != nil {
				return 0, errInvalidISO8601Duration
			}
			d += time.Duration(tmp) * time.Minute
			start = i + 1

		case 'S':
			if !isParsingTime || start == i {
				return 0, errInvalidISO8601Duration
			}
			tmp, err = strconv.Atoi(from[start:i])
			if err != nil {
				return 0, errInvalidISO8601Duration
			}

			if !isDecimal {
				d += time.Duration(tmp) * time.Second
			} else {
				switch i - start {
				case 3:
					d += time.Duration(tmp) * time.Millisecond
				case 2:
					d += time.Duration(tmp*10) * time.Millisecond
				case 1:
					d += time.Duration(tmp*100) * time.Millisecond
				default:
					return 0, errInvalidISO8601Duration
				}
			}
			start = i + 1

		case '.':
			// We allow decimals only for seconds
			if !isParsingTime || isDecimal {
				return 0, errInvalidISO8601Duration
			}

			tmp, err = strconv.Atoi(from[start:i])
			if err != nil {
				return 0, errInvalidISO8601Duration
			}
			d += time.Duration(tmp) * time.Second

			isDecimal = true
			start = i + 1

		case 'Y':
			// Years don't have a fixed length
			return 0, errInvalidISO8601Duration
		}

		i++
	}

	// Trailing characters without a designator
	if start != l {
		return 0, errInvalidISO8601Duration
	}

	return d, nil
}
