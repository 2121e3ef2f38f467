package services

import "time"

// Clock supplies the current instant. It exists so day-boundary decisions
// can run under a fixed clock in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }
