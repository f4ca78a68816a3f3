package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorPushPopRoundTrip(t *testing.T) {
	t.Parallel()
	for w := 2; w <= 12; w++ {
		c := NewTextCursor(4, 7, w)
		for i := 0; i < w; i++ {
			c.Push('a')
		}
		for i := 0; i < w; i++ {
			c.Pop()
		}
		assert.Equal(t, 4, c.X, "x after %d pushes and pops", w)
		assert.Equal(t, 7, c.Y, "y after %d pushes and pops", w)
		assert.Equal(t, 0, c.Len())
	}
}

func TestCursorPopRetracesEveryPush(t *testing.T) {
	t.Parallel()
	c := NewTextCursor(2, 3, 4)
	type pos struct{ x, y int }
	var trail []pos
	for i := 0; i < 10; i++ {
		trail = append(trail, pos{c.X, c.Y})
		c.Push('z')
	}
	for i := len(trail) - 1; i >= 0; i-- {
		c.Pop()
		require.Equal(t, trail[i], pos{c.X, c.Y}, "pop %d should land where push %d started", len(trail)-i, i)
	}
}

func TestCursorWrapsAtFieldWidth(t *testing.T) {
	t.Parallel()
	c := NewTextCursor(0, 0, 4)
	for _, r := range "abc" {
		c.Push(r)
	}
	// three characters fill a line of width 4
	require.Equal(t, 0, c.X)
	require.Equal(t, 1, c.Y)
	require.Equal(t, []string{"abc", ""}, c.Lines())

	c.Push('d')
	require.Equal(t, 1, c.X)
	require.Equal(t, 1, c.Y)
	require.Equal(t, []string{"abc", "d"}, c.Lines())
	require.Equal(t, "abcd", c.Text())
}

func TestCursorDegenerateWidth(t *testing.T) {
	t.Parallel()
	for _, w := range []int{-3, 0, 1} {
		c := NewTextCursor(1, 1, w)
		c.Push('a')
		c.Push('b')
		assert.Equal(t, 1, c.X, "width %d never moves horizontally", w)
		assert.Equal(t, 3, c.Y, "width %d wraps on every character", w)
		c.Pop()
		c.Pop()
		assert.Equal(t, 1, c.Y)
	}
}

func TestCursorPopSaturatesAtAnchor(t *testing.T) {
	t.Parallel()
	c := NewTextCursor(5, 5, 8)
	c.Pop()
	c.Pop()
	require.Equal(t, 5, c.X)
	require.Equal(t, 5, c.Y)

	c.Push('x')
	c.Pop()
	c.Pop()
	dx, dy := c.Offset()
	require.Zero(t, dx)
	require.Zero(t, dy)
}

func TestCursorCountsRunes(t *testing.T) {
	t.Parallel()
	c := NewTextCursor(0, 0, 10)
	for _, r := range "héllo" {
		c.Push(r)
	}
	require.Equal(t, 5, c.Len())
	require.Equal(t, 5, c.X)
	c.Pop()
	require.Equal(t, "héll", c.Text())
}
