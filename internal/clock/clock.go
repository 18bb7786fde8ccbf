package clock

import "time"

// Clock hands out event timestamps.
type Clock interface {
	Next() time.Time
}

// Logical returns its current instant on every call and then moves it forward by a
// fixed step, so correlated events appear minutes apart without any real waiting.
// It is not safe for concurrent use.
type Logical struct {
	current time.Time
	step    time.Duration
}

func NewLogical(start time.Time, step time.Duration) *Logical {
	return &Logical{current: start, step: step}
}

func (c *Logical) Next() time.Time {
	t := c.current
	c.current = c.current.Add(c.step)
	return t
}

// Wall reads the system clock.
type Wall struct{}

func (Wall) Next() time.Time {
	return time.Now()
}

// Sequence replays a fixed list of instants and repeats the last one once exhausted.
type Sequence struct {
	instants []time.Time
	pos      int
}

func NewSequence(instants ...time.Time) *Sequence {
	return &Sequence{instants: instants}
}

func (c *Sequence) Next() time.Time {
	if len(c.instants) == 0 {
		return time.Time{}
	}
	if c.pos >= len(c.instants) {
		return c.instants[len(c.instants)-1]
	}
	t := c.instants[c.pos]
	c.pos++
	return t
}
