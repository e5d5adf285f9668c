package scheduler

import (
	"context"
	"sync"
	"time"
)

// Loop is the production Scheduler: a single goroutine drains a queue of
// callbacks fed by tickers and posts.
type Loop struct {
	queue chan func()

	mu      sync.Mutex
	stopped bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	done    chan struct{}
}

// NewLoop creates a loop with the given queue depth.
func NewLoop(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = 64
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loop{
		queue:  make(chan func(), queueSize),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Run executes callbacks until Close is called or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			l.Close()
			return
		case <-l.ctx.Done():
			return
		case fn := <-l.queue:
			fn()
		}
	}
}

// Every starts a ticker goroutine that posts fn onto the loop.
func (l *Loop) Every(interval time.Duration, fn func()) CancelFunc {
	ctx, cancel := context.WithCancel(l.ctx)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.post(ctx, fn)
			}
		}
	}()
	return CancelFunc(cancel)
}

// Post queues fn. It blocks while the queue is full and drops fn once the
// loop is closed.
func (l *Loop) Post(fn func()) {
	l.post(l.ctx, fn)
}

func (l *Loop) post(ctx context.Context, fn func()) {
	select {
	case <-ctx.Done():
	case l.queue <- fn:
	}
}

// Go runs fn on its own goroutine.
func (l *Loop) Go(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.wg.Add(1)
	l.mu.Unlock()
	go func() {
		defer l.wg.Done()
		fn()
	}()
}

// Now returns wall clock time.
func (l *Loop) Now() time.Time { return time.Now() }

// Close stops all tickers and the run loop. Safe to call more than once.
func (l *Loop) Close() {
	l.mu.Lock()
	l.stopped = true
	l.mu.Unlock()
	l.cancel()
}

// Wait blocks until Run returned and background work finished, or ctx expires.
func (l *Loop) Wait(ctx context.Context) error {
	finished := make(chan struct{})
	go func() {
		<-l.done
		l.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
