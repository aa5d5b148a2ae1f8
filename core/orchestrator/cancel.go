package orchestrator

import "sync/atomic"

// CancelToken is the cooperative cancellation handle threaded through a
// scan (§4.4, §5): the driver polls it between dispatches, the perceptual
// grouper polls it inside its candidate-enumeration loops.
type CancelToken struct {
	cancelled atomic.Bool
}

// NewCancelToken creates a token in the not-cancelled state.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel requests cancellation. Safe to call from any goroutine, any
// number of times.
func (c *CancelToken) Cancel() {
	c.cancelled.Store(true)
}

// Cancelled reports whether Cancel has been called.
func (c *CancelToken) Cancelled() bool {
	return c != nil && c.cancelled.Load()
}
