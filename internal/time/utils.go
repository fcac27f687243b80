package timeutils

import (
	"fmt"
	"math"
	"time"

	"github.com/imishinist/logger-dev/internal/models"
)

// DefaultUnit is assumed for runs that never declare a time unit.
const DefaultUnit = "s"

var unitScale = map[string]time.Duration{
	"s":  time.Second,
	"ms": time.Millisecond,
	"us": time.Microsecond,
	"ns": time.Nanosecond,
}

// ToDuration converts a timestamp value expressed in unit to a duration.
func ToDuration(value float64, unit string) (time.Duration, error) {
	if unit == "" {
		unit = DefaultUnit
	}
	scale, ok := unitScale[unit]
	if !ok {
		return 0, fmt.Errorf("unsupported time unit: %s (valid: s, ms, us, ns)", unit)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("invalid timestamp: %v", value)
	}
	return time.Duration(value * float64(scale)), nil
}

// Span returns the time between the first and last timestamp of payload.
func Span(payload *models.Payload) (time.Duration, error) {
	if payload == nil || len(payload.T) == 0 {
		return 0, nil
	}
	first, last := payload.T[0], payload.T[len(payload.T)-1]
	return ToDuration(last-first, payload.TUnit)
}
