package engine

import "time"

// TimeProvider is a time source. Cadence math only ever subtracts readings, so
// implementations must be monotonic
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the process clock; time.Now carries a monotonic reading
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a real-time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
