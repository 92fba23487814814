package sched

import (
	"math"
	"time"
)

// Deadline reports the time remaining in the current scheduling slice.
type Deadline interface {
	TimeRemaining() time.Duration
}

// Callback is invoked by a Port with the deadline of its slice.
type Callback func(Deadline)

// Port is a cooperative-scheduling primitive.
type Port interface {
	// Request registers cb to run at the next scheduling opportunity.
	Request(cb Callback)
}

// Unlimited is a deadline that never runs out.
var Unlimited Deadline = unlimited{}

type unlimited struct{}

func (unlimited) TimeRemaining() time.Duration { return math.MaxInt64 }

// Budget returns a wall-clock deadline that expires d from now.
func Budget(d time.Duration) Deadline {
	return &budget{end: time.Now().Add(d)}
}

type budget struct {
	end time.Time
}

func (b *budget) TimeRemaining() time.Duration {
	if left := time.Until(b.end); left > 0 {
		return left
	}
	return 0
}

// Units returns a deadline that reports plenty of time for the first n
// queries and none afterwards. The engine queries once per unit of work, so
// Units(n) lets exactly n units run in a slice (at least one always runs).
func Units(n int) Deadline {
	return &units{left: n}
}

type units struct {
	left int
}

func (u *units) TimeRemaining() time.Duration {
	if u.left <= 1 {
		u.left = 0
		return 0
	}
	u.left--
	return time.Hour
}
