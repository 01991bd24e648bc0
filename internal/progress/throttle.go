package progress

import (
	"time"

	"golang.org/x/time/rate"
)

// Clock returns the current instant. Tests substitute a synthetic one.
type Clock func() time.Time

// Throttle decides, at each chunk arrival, whether a progress update may be
// emitted. It allows one emission per interval; the first call always emits.
// There is no timer, so nothing is emitted between calls.
type Throttle struct {
	limiter  *rate.Limiter
	interval time.Duration
}

// NewThrottle returns a throttle that emits at most once per interval.
// A non-positive interval lets every call through.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		interval: interval,
	}
}

// ShouldEmit reports whether at least one interval has passed since the
// last emission, and if so records now as the last emission.
func (t *Throttle) ShouldEmit(now time.Time) bool {
	return t.limiter.AllowN(now, 1)
}

func (t *Throttle) Interval() time.Duration {
	return t.interval
}
