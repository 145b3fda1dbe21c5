package delayqueue

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidTimeUnit = errors.New("invalid time unit")

// TimeUnit is the unit a delay amount is expressed in.
type TimeUnit int

const (
	Nanoseconds TimeUnit = iota
	Microseconds
	Milliseconds
	Seconds
	Minutes
	Hours
)

// Duration returns the length of one unit.
func (u TimeUnit) Duration() time.Duration {
	switch u {
	case Nanoseconds:
		return time.Nanosecond
	case Microseconds:
		return time.Microsecond
	case Milliseconds:
		return time.Millisecond
	case Seconds:
		return time.Second
	case Minutes:
		return time.Minute
	case Hours:
		return time.Hour
	default:
		// Indicates a development-time error
		panic(fmt.Errorf("%w: %d", ErrInvalidTimeUnit, int(u)))
	}
}

// IsValid returns true if the value is one of the supported units.
func (u TimeUnit) IsValid() bool {
	return u >= Nanoseconds && u <= Hours
}

// String returns the short symbol of the unit
func (u TimeUnit) String() string {
	switch u {
	case Nanoseconds:
		return "ns"
	case Microseconds:
		return "us"
	case Milliseconds:
		return "ms"
	case Seconds:
		return "s"
	case Minutes:
		return "m"
	case Hours:
		return "h"
	default:
		return "TimeUnit(" + fmt.Sprint(int(u)) + ")"
	}
}

// ParseTimeUnit parses a unit from its symbol or its name, case-insensitively.
func ParseTimeUnit(s string) (TimeUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ns", "nanosecond", "nanoseconds":
		return Nanoseconds, nil
	case "us", "µs", "microsecond", "microseconds":
		return Microseconds, nil
	case "ms", "millisecond", "milliseconds":
		return Milliseconds, nil
	case "s", "sec", "second", "seconds":
		return Seconds, nil
	case "m", "min", "minute", "minutes":
		return Minutes, nil
	case "h", "hour", "hours":
		return Hours, nil
	default:
		return 0, fmt.Errorf("%w: '%s'", ErrInvalidTimeUnit, s)
	}
}
