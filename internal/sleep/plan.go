package sleep

import "time"

// Plan is everything shown for one wake-up time at one instant.
type Plan struct {
	WakeUpTime      WallClock
	Now             time.Time
	WakeUp          time.Time
	Duration        Duration
	Comment         Comment
	Recommendations []Recommendation
}

func NewPlan(w WallClock, now time.Time) (*Plan, error) {
	wake, err := Resolve(w, now)
	if err != nil {
		return nil, err
	}
	d := Until(wake, now)
	return &Plan{
		WakeUpTime:      w,
		Now:             now,
		WakeUp:          wake,
		Duration:        d,
		Comment:         CommentFor(d.Hours),
		Recommendations: Recommendations(wake, now),
	}, nil
}
