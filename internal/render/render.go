// Package render formats a sleep plan for terminals and templates.
package render

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"r90calc/internal/sleep"
)

var (
	optimalColor = color.New(color.FgGreen, color.Bold)
	okColor      = color.New(color.FgYellow)
	dimColor     = color.New(color.FgHiBlack)
	accentColor  = color.New(color.FgCyan, color.Bold)
)

// FormatClock returns t as HH:mm.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// FormatClockFrom is FormatClock with a (+Nd) suffix when t is on a later
// calendar day than ref.
func FormatClockFrom(t, ref time.Time) string {
	days := dayDiff(ref, t)
	if days <= 0 {
		return FormatClock(t)
	}
	return fmt.Sprintf("%s (+%dd)", FormatClock(t), days)
}

func dayDiff(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da) / (24 * time.Hour))
}

// Line is one recommendation ready for display.
type Line struct {
	Time    string  `json:"time"`
	Cycles  int     `json:"cycles"`
	Hours   float64 `json:"hours"`
	Optimal bool    `json:"optimal"`
	Badge   string  `json:"badge,omitempty"`
	Mood    string  `json:"mood"`
}

// View is a plan flattened into display strings.
type View struct {
	Now      string `json:"now"`
	WakeUp   string `json:"wake_up"`
	Duration string `json:"duration"`
	Hours    int    `json:"hours"`
	Minutes  int    `json:"minutes"`
	Comment  string `json:"comment"`
	Lines    []Line `json:"recommendations"`
}

func NewView(p *sleep.Plan) View {
	v := View{
		Now:      FormatClock(p.Now),
		WakeUp:   FormatClockFrom(p.WakeUp, p.Now),
		Duration: p.Duration.String(),
		Hours:    p.Duration.Hours,
		Minutes:  p.Duration.Minutes,
		Comment:  p.Comment.String(),
		Lines:    make([]Line, 0, len(p.Recommendations)),
	}
	for _, r := range p.Recommendations {
		v.Lines = append(v.Lines, Line{
			Time:    FormatClockFrom(r.Bedtime, p.Now),
			Cycles:  r.Cycles,
			Hours:   r.SleepHours(),
			Optimal: r.Optimal(),
			Badge:   r.Badge(),
			Mood:    r.Mood(),
		})
	}
	return v
}

// Text writes the plan for a terminal.
func Text(w io.Writer, p *sleep.Plan) {
	v := NewView(p)

	fmt.Fprintf(w, "Now %s, wake up at %s\n", v.Now, v.WakeUp)
	fmt.Fprint(w, "Sleeping now gives you ")
	accentColor.Fprint(w, v.Duration)
	fmt.Fprintln(w)
	dimColor.Fprintln(w, v.Comment)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Recommended bedtimes (%d min cycles + %d min to fall asleep):\n",
		int(sleep.CycleLength.Minutes()), int(sleep.FallAsleepBuffer.Minutes()))
	if len(v.Lines) == 0 {
		fmt.Fprintln(w, "  none left before wake-up, go to bed now")
		return
	}
	for _, l := range v.Lines {
		line := fmt.Sprintf("  %-12s %d cycles  %.1fh  %s", l.Time, l.Cycles, l.Hours, l.Mood)
		if l.Optimal {
			optimalColor.Fprintln(w, line+"  "+l.Badge)
		} else {
			okColor.Fprintln(w, line)
		}
	}
}

// Clear moves the cursor home and clears an ANSI terminal.
func Clear(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}
