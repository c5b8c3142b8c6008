package core

// Lifetime is a disposable scope with lease-based validity
// Holders capture Lease() when they start and check IsStillValid on every use
// so a disposed-then-reset lifetime never revives a stale holder
// Not safe for concurrent use, owned by the simulation goroutine
type Lifetime struct {
	lease    uint64
	disposed bool
	handlers []func()
}

// NewLifetime creates a live lifetime
func NewLifetime() *Lifetime {
	return &Lifetime{lease: 1}
}

// Lease returns the current lease token
func (l *Lifetime) Lease() uint64 {
	return l.lease
}

// IsStillValid reports whether the lifetime is alive and still on the given lease
func (l *Lifetime) IsStillValid(lease uint64) bool {
	return l != nil && !l.disposed && l.lease == lease
}

// IsExpired reports whether Dispose has been called
func (l *Lifetime) IsExpired() bool {
	return l == nil || l.disposed
}

// OnDisposed registers fn to run on disposal, runs immediately if already disposed
func (l *Lifetime) OnDisposed(fn func()) {
	if l.disposed {
		fn()
		return
	}
	l.handlers = append(l.handlers, fn)
}

// Dispose ends the lifetime and runs handlers in registration order, idempotent
func (l *Lifetime) Dispose() {
	if l == nil || l.disposed {
		return
	}
	l.disposed = true
	l.lease++

	handlers := l.handlers
	l.handlers = nil
	for _, fn := range handlers {
		fn()
	}
}

// Reset revives a disposed lifetime under a new lease for reuse from a pool
func (l *Lifetime) Reset() {
	if !l.disposed {
		l.Dispose()
	}
	l.disposed = false
	l.lease++
}

// Race links two lifetimes so that disposing either disposes the other
func Race(a, b *Lifetime) {
	a.OnDisposed(b.Dispose)
	b.OnDisposed(a.Dispose)
}
