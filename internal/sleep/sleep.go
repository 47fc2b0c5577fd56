// Package sleep implements R90 bedtime math: whole 90-minute sleep cycles
// counted back from a wake-up time, plus a fixed fall-asleep buffer.
package sleep

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	CycleLength      = 90 * time.Minute
	FallAsleepBuffer = 15 * time.Minute

	MinCycles = 4
	MaxCycles = 6
)

// ErrInvalidWallClock is returned when an hour or minute is outside its range.
var ErrInvalidWallClock = errors.New("invalid wall clock time")

// WallClock is a time of day with no date attached.
type WallClock struct {
	Hour   int
	Minute int
}

func (w WallClock) Validate() error {
	if w.Hour < 0 || w.Hour > 23 {
		return fmt.Errorf("%w: hour %d not in 0-23", ErrInvalidWallClock, w.Hour)
	}
	if w.Minute < 0 || w.Minute > 59 {
		return fmt.Errorf("%w: minute %d not in 0-59", ErrInvalidWallClock, w.Minute)
	}
	return nil
}

func (w WallClock) String() string {
	return fmt.Sprintf("%02d:%02d", w.Hour, w.Minute)
}

// ParseWallClock parses "H:MM" or "HH:MM".
func ParseWallClock(s string) (WallClock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[1]) != 2 || !digits(parts[0]) || !digits(parts[1]) {
		return WallClock{}, fmt.Errorf("%w: %q, expected HH:MM", ErrInvalidWallClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return WallClock{}, fmt.Errorf("%w: %q, expected HH:MM", ErrInvalidWallClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return WallClock{}, fmt.Errorf("%w: %q, expected HH:MM", ErrInvalidWallClock, s)
	}
	w := WallClock{Hour: h, Minute: m}
	if err := w.Validate(); err != nil {
		return WallClock{}, err
	}
	return w, nil
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Resolve returns the first instant after now whose local wall clock reads w.
// A same-day instant equal to now counts as already passed.
func Resolve(w WallClock, now time.Time) (time.Time, error) {
	if err := w.Validate(); err != nil {
		return time.Time{}, err
	}
	wake := time.Date(now.Year(), now.Month(), now.Day(), w.Hour, w.Minute, 0, 0, now.Location())
	if !wake.After(now) {
		wake = wake.AddDate(0, 0, 1)
	}
	return wake, nil
}

// Duration is a non-negative span split into whole hours and leftover minutes.
type Duration struct {
	Hours   int
	Minutes int
}

func (d Duration) String() string {
	return fmt.Sprintf("%d hours %d minutes", d.Hours, d.Minutes)
}

// Until returns the whole minutes between now and wake, or zero if wake is not ahead.
func Until(wake, now time.Time) Duration {
	total := int(wake.Sub(now) / time.Minute)
	return Duration{
		Hours:   max(0, total/60),
		Minutes: max(0, total%60),
	}
}

// Recommendation is a candidate bedtime giving Cycles full sleep cycles.
type Recommendation struct {
	Bedtime time.Time `json:"bedtime"`
	Cycles  int       `json:"cycles"`
}

func (r Recommendation) Optimal() bool {
	return r.Cycles == 5 || r.Cycles == 6
}

func (r Recommendation) SleepHours() float64 {
	return float64(r.Cycles) * CycleLength.Hours()
}

// Badge labels optimal recommendations; it is empty for the rest.
func (r Recommendation) Badge() string {
	switch r.Cycles {
	case 6:
		return "great"
	case 5:
		return "just right"
	default:
		return ""
	}
}

func (r Recommendation) Mood() string {
	switch r.Cycles {
	case 6:
		return "rested"
	case 5:
		return "fresh"
	case 4:
		return "groggy"
	default:
		return "sleepy"
	}
}

// Recommend yields bedtimes for 6, 5 and 4 cycles before wake, skipping any
// that are not after now. Each range over the result recomputes from scratch.
func Recommend(wake, now time.Time) iter.Seq[Recommendation] {
	return func(yield func(Recommendation) bool) {
		for c := MaxCycles; c >= MinCycles; c-- {
			bedtime := wake.Add(-(time.Duration(c)*CycleLength + FallAsleepBuffer))
			if !bedtime.After(now) {
				continue
			}
			if !yield(Recommendation{Bedtime: bedtime, Cycles: c}) {
				return
			}
		}
	}
}

func Recommendations(wake, now time.Time) []Recommendation {
	return slices.Collect(Recommend(wake, now))
}
