package sleep

// Comment is a qualitative remark on how many hours of sleep are left.
type Comment int

const (
	Critical Comment = iota
	Short
	Marginal
	Good
	Excellent
	Excessive
)

var commentText = [...]string{
	Critical:  "That's barely any sleep. Go to bed right now!",
	Short:     "A bit short, but you'll pull through.",
	Marginal:  "Just about enough. Try not to nod off tomorrow.",
	Good:      "Nice, a healthy night's sleep.",
	Excellent: "Perfect amount of sleep.",
	Excessive: "That's a lot of sleep. Hibernating?",
}

func (c Comment) String() string {
	if c < Critical || c > Excessive {
		return "unknown"
	}
	return commentText[c]
}

// CommentFor buckets hours into [0,4) [4,6) [6,7) [7,8) [8,9) [9,inf).
func CommentFor(hours int) Comment {
	switch {
	case hours < 4:
		return Critical
	case hours < 6:
		return Short
	case hours < 7:
		return Marginal
	case hours < 8:
		return Good
	case hours < 9:
		return Excellent
	default:
		return Excessive
	}
}
