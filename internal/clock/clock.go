// Package clock supplies "now" and a periodic tick for live views.
package clock

import (
	"context"
	"time"
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// System reads the local system clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always reports T.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// Tick calls fn with c.Now() right away and then every interval until ctx is
// done. fn runs on the caller's goroutine. Tick returns ctx.Err().
func Tick(ctx context.Context, c Clock, every time.Duration, fn func(now time.Time)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn(c.Now())

	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fn(c.Now())
		}
	}
}
