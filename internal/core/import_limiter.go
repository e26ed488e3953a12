package core

// import_limiter.go bounds how many CSV imports are parsed and merged at once.
//
// Imports hold the whole file in memory and serialize on the store lock, so a
// burst of uploads only queues work. The limiter hands out a fixed number of
// slots; callers wait up to maxWait for one before failing with ErrImportBusy.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrImportBusy is returned when no import slot frees up in time.
var ErrImportBusy = errors.New("import busy: too many concurrent imports")

const (
	DefaultMaxConcurrentImports = 2
	DefaultImportWait           = 10 * time.Second
)

// ImportLimiter is a counting semaphore for imports.
type ImportLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int32
}

// NewImportLimiter allows at most maxConcurrent imports; others wait up to maxWait.
func NewImportLimiter(maxConcurrent int, maxWait time.Duration) *ImportLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentImports
	}
	if maxWait <= 0 {
		maxWait = DefaultImportWait
	}
	return &ImportLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot. The caller must Release it.
func (l *ImportLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrImportBusy
	}
}

// TryAcquire takes a slot without waiting.
func (l *ImportLimiter) TryAcquire() bool {
	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return true
	default:
		return false
	}
}

// Release returns a slot taken by Acquire or TryAcquire.
func (l *ImportLimiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// Active returns the number of imports in progress.
func (l *ImportLimiter) Active() int { return int(l.active.Load()) }

// Capacity returns the slot count.
func (l *ImportLimiter) Capacity() int { return cap(l.slots) }

// WaitForDrain blocks until no import is running or ctx is done.
// Used during shutdown.
func (l *ImportLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for l.Active() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
