package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogical_Next(t *testing.T) {
	start := time.Unix(1700000000, 0)
	c := NewLogical(start, time.Minute)

	first := c.Next()
	assert.Equal(t, start, first)

	prev := first
	for i := 0; i < 10; i++ {
		next := c.Next()
		assert.True(t, next.After(prev))
		assert.Equal(t, time.Minute, next.Sub(prev))
		prev = next
	}
}

func TestLogical_SatisfiesClock(t *testing.T) {
	var c Clock = NewLogical(time.Unix(0, 0), time.Second)
	assert.Equal(t, int64(0), c.Next().Unix())
	assert.Equal(t, int64(1), c.Next().Unix())
}

func TestWall_Next(t *testing.T) {
	var c Clock = Wall{}
	before := time.Now()
	got := c.Next()
	assert.False(t, got.Before(before))
}

func TestSequence_Next(t *testing.T) {
	a := time.Unix(10, 0)
	b := time.Unix(20, 0)
	c := NewSequence(a, b)

	assert.Equal(t, a, c.Next())
	assert.Equal(t, b, c.Next())
	assert.Equal(t, b, c.Next())

	assert.True(t, NewSequence().Next().IsZero())
}
