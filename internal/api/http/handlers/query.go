package handlers

import (
	"time"

	"github.com/spec-kit/partner-desk/internal/insights"
)

// Clock returns the current time.
type Clock func() time.Time

func clockOrNow(clock Clock) Clock {
	if clock == nil {
		return time.Now
	}
	return clock
}

// validEnumFilter accepts the "all" sentinel, an empty value, or a known enum value.
func validEnumFilter(value string, valid func(string) bool) bool {
	return value == "" || value == insights.FilterAll || valid(value)
}
