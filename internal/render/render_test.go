package render

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"r90calc/internal/sleep"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.March, day, hour, minute, 0, 0, time.UTC)
}

func TestFormatClockFrom(t *testing.T) {
	assert.Equal(t, "23:15", FormatClockFrom(at(10, 23, 15), at(10, 22, 0)))
	assert.Equal(t, "00:45 (+1d)", FormatClockFrom(at(11, 0, 45), at(10, 22, 0)))
	assert.Equal(t, "07:00 (+2d)", FormatClockFrom(at(12, 7, 0), at(10, 22, 0)))
	assert.Equal(t, "07:00", FormatClock(at(12, 7, 0)))
}

func TestNewView(t *testing.T) {
	p, err := sleep.NewPlan(sleep.WallClock{Hour: 7}, at(10, 22, 0))
	require.NoError(t, err)

	v := NewView(p)
	assert.Equal(t, "22:00", v.Now)
	assert.Equal(t, "07:00 (+1d)", v.WakeUp)
	assert.Equal(t, "9 hours 0 minutes", v.Duration)
	assert.Equal(t, sleep.Excessive.String(), v.Comment)
	assert.Equal(t, []Line{
		{Time: "23:15", Cycles: 5, Hours: 7.5, Optimal: true, Badge: "just right", Mood: "fresh"},
		{Time: "00:45 (+1d)", Cycles: 4, Hours: 6, Optimal: false, Mood: "groggy"},
	}, v.Lines)
}

func TestText(t *testing.T) {
	p, err := sleep.NewPlan(sleep.WallClock{Hour: 7}, at(10, 22, 0))
	require.NoError(t, err)

	var buf bytes.Buffer
	Text(&buf, p)
	out := buf.String()
	assert.Contains(t, out, "Sleeping now gives you 9 hours 0 minutes")
	assert.Contains(t, out, "90 min cycles + 15 min to fall asleep")
	assert.Contains(t, out, "23:15        5 cycles  7.5h  fresh  just right")
	assert.Contains(t, out, "00:45 (+1d)  4 cycles  6.0h  groggy\n")
}

func TestTextNoneLeft(t *testing.T) {
	p, err := sleep.NewPlan(sleep.WallClock{Hour: 7}, at(10, 6, 59))
	require.NoError(t, err)

	var buf bytes.Buffer
	Text(&buf, p)
	assert.Contains(t, buf.String(), "0 hours 1 minutes")
	assert.Contains(t, buf.String(), "none left before wake-up")
}

func TestTextBadgePerCycleCount(t *testing.T) {
	p, err := sleep.NewPlan(sleep.WallClock{Hour: 7}, at(10, 12, 0))
	require.NoError(t, err)

	var buf bytes.Buffer
	Text(&buf, p)
	out := buf.String()
	assert.Contains(t, out, "21:45        6 cycles  9.0h  rested  great")
	assert.Contains(t, out, "23:15        5 cycles  7.5h  fresh  just right")
	assert.Contains(t, out, "00:45 (+1d)  4 cycles  6.0h  groggy\n")
}
