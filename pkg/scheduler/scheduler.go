// Package scheduler provides the timer capability the wallboard controllers
// run on. Every callback handed to a Scheduler executes on one logical
// thread, so callbacks never interleave with each other.
package scheduler

import "time"

// CancelFunc stops a repeating schedule. Calling it more than once is safe.
type CancelFunc func()

// Scheduler runs callbacks on a single logical thread.
type Scheduler interface {
	// Every runs fn each interval until cancelled. The first run happens
	// one interval after the call.
	Every(interval time.Duration, fn func()) CancelFunc
	// Post runs fn on the scheduler thread.
	Post(fn func())
	// Go runs blocking work off the scheduler thread. Results must be
	// handed back with Post.
	Go(fn func())
	// Now returns the scheduler's current time.
	Now() time.Time
}
