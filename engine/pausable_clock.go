package engine

import (
	"sync"
	"time"
)

// PausableClock derives simulation time from a real clock minus every paused interval
type PausableClock struct {
	mu sync.RWMutex

	real        TimeProvider
	paused      bool
	pauseStart  time.Time
	totalPaused time.Duration
}

// NewPausableClock runs on top of real
func NewPausableClock(real TimeProvider) *PausableClock {
	return &PausableClock{real: real}
}

// Now returns simulation time, frozen while paused
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	if pc.paused {
		return pc.pauseStart.Add(-pc.totalPaused)
	}
	return pc.real.Now().Add(-pc.totalPaused)
}

// Pause stops simulation time
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = pc.real.Now()
}

// Resume continues simulation time from where it stopped
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.totalPaused += pc.real.Now().Sub(pc.pauseStart)
	pc.paused = false
}

// Toggle flips the pause state and returns the new one
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPaused returns cumulative pause time, the current pause included
func (pc *PausableClock) TotalPaused() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	total := pc.totalPaused
	if pc.paused {
		total += pc.real.Now().Sub(pc.pauseStart)
	}
	return total
}
