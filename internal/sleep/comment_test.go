package sleep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommentFor(t *testing.T) {
	tests := []struct {
		hours int
		want  Comment
	}{
		{-3, Critical},
		{0, Critical},
		{3, Critical},
		{4, Short},
		{5, Short},
		{6, Marginal},
		{7, Good},
		{8, Excellent},
		{9, Excessive},
		{23, Excessive},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CommentFor(tt.hours), "hours=%d", tt.hours)
	}
}

func TestCommentString(t *testing.T) {
	seen := map[string]bool{}
	for c := Critical; c <= Excessive; c++ {
		s := c.String()
		assert.NotEmpty(t, s)
		assert.False(t, seen[s], "duplicate text %q", s)
		seen[s] = true
	}
	assert.Equal(t, "unknown", Comment(42).String())
}

func TestNewPlan(t *testing.T) {
	p, err := NewPlan(WallClock{7, 0}, at(10, 22, 0))
	assert.NoError(t, err)
	assert.Equal(t, at(11, 7, 0), p.WakeUp)
	assert.Equal(t, Duration{9, 0}, p.Duration)
	assert.Equal(t, Excessive, p.Comment)
	assert.Len(t, p.Recommendations, 2)

	p, err = NewPlan(WallClock{7, 0}, at(10, 6, 59))
	assert.NoError(t, err)
	assert.Equal(t, Duration{0, 1}, p.Duration)
	assert.Equal(t, Critical, p.Comment)
	assert.Empty(t, p.Recommendations)

	_, err = NewPlan(WallClock{25, 0}, at(10, 6, 59))
	assert.ErrorIs(t, err, ErrInvalidWallClock)
}
