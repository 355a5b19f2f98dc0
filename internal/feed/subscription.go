package feed

import "sync"

// Subscription is the handle returned by Subscribe. Closing it stops the
// pump and releases the underlying channel.
type Subscription struct {
	once    sync.Once
	closeFn func() error
}

// NewSubscription wraps a release function in a handle. Exposed so
// consumers that fake the feed in tests can hand out real handles.
func NewSubscription(closeFn func() error) *Subscription {
	return &Subscription{closeFn: closeFn}
}

// Close releases the subscription exactly once. Closing again, or
// closing a nil handle (a view torn down before its subscription was
// ever established), is a safe no-op.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.closeFn != nil {
			_ = s.closeFn()
		}
	})
}
