package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClockAdvance(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	c := NewFakeClock(start)

	assert.Equal(t, start.UTC(), c.Now())

	c.Advance(30 * 24 * time.Hour)
	assert.Equal(t, "2024-03-31", c.Now().Format(time.DateOnly))
}

func TestSystemClockIsMonotonicEnough(t *testing.T) {
	c := NewSystemClock()
	before := time.Now()
	assert.False(t, c.Now().Before(before))
}

func TestFakeClockSet(t *testing.T) {
	c := NewFakeClock(time.Unix(0, 0))
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	c.Set(at.In(time.FixedZone("X", 3600)))
	assert.Equal(t, at, c.Now())
}
