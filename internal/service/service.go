// Package service holds the lectora use cases. Services own the read-modify-write
// sequences over stored preferences and talk to the catalog through narrow ports.
package service

import (
	"time"
)

// Clock returns the current time. Tests inject fixed clocks.
type Clock func() time.Time

func (c Clock) orNow() Clock {
	if c == nil {
		return time.Now
	}
	return c
}
