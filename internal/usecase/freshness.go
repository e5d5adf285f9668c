package usecase

import (
	"sync"
	"time"

	"Wallboard/internal/domain/models"
)

const (
	DefaultFreshFor   = 30 * time.Second
	DefaultStaleAfter = 60 * time.Second
)

// FreshnessTracker remembers the last successful fetch and classifies how
// old the data on screen is. Safe for concurrent use.
type FreshnessTracker struct {
	freshFor   time.Duration
	staleAfter time.Duration

	mu          sync.RWMutex
	lastSuccess time.Time
}

// NewFreshnessTracker creates a tracker. Non-positive thresholds fall back to
// the 30s/60s defaults.
func NewFreshnessTracker(freshFor, staleAfter time.Duration) *FreshnessTracker {
	if freshFor <= 0 {
		freshFor = DefaultFreshFor
	}
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &FreshnessTracker{freshFor: freshFor, staleAfter: staleAfter}
}

// Mark records a successful fetch. An older time than the one already
// recorded is ignored.
func (f *FreshnessTracker) Mark(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.After(f.lastSuccess) {
		f.lastSuccess = t
	}
}

// LastSuccess returns the zero time until the first Mark.
func (f *FreshnessTracker) LastSuccess() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastSuccess
}

// Age returns how long ago the last success was, or false without one.
func (f *FreshnessTracker) Age(now time.Time) (time.Duration, bool) {
	last := f.LastSuccess()
	if last.IsZero() {
		return 0, false
	}
	return now.Sub(last), true
}

func (f *FreshnessTracker) Classify(now time.Time) models.FreshnessState {
	age, ok := f.Age(now)
	switch {
	case !ok:
		return models.FreshnessNoData
	case age < f.freshFor:
		return models.FreshnessFresh
	case age < f.staleAfter:
		return models.FreshnessAging
	default:
		return models.FreshnessStale
	}
}
