package popup

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback, false if it already ran or was stopped
	Stop() bool
}

// Scheduler runs callbacks after a delay. The controller is single threaded:
// a Scheduler must deliver callbacks on the goroutine that drives the
// controller.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// PostScheduler waits on a runtime timer, then hands the callback to post,
// which is expected to queue it on the host's event loop. A stopped timer
// never calls post.
type PostScheduler func(fn func())

func (post PostScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() { post(f) })
}
