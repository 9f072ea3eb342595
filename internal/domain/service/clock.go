// Package service defines domain-level collaborator interfaces that the
// use case layer depends on without knowing their concrete implementation.
package service

import "time"

// Clock supplies the current time. Injecting it instead of calling
// time.Now keeps overdue detection and penalty computation deterministic
// under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystemClock returns a Clock backed by the wall clock.
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
