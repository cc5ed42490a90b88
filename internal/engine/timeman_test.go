package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeBudgetUnlimited(t *testing.T) {
	var tb TimeBudget
	tb.Start(0)
	assert.False(t, tb.Expired(), "zero budget means unlimited")
}

func TestTimeBudgetExpires(t *testing.T) {
	var tb TimeBudget
	tb.Start(time.Nanosecond)
	time.Sleep(time.Millisecond)
	assert.True(t, tb.Expired())
}

func TestTimeBudgetElapsed(t *testing.T) {
	var tb TimeBudget
	tb.Start(time.Hour)
	time.Sleep(2 * time.Millisecond)
	assert.False(t, tb.Expired())
	assert.Greater(t, tb.Elapsed(), time.Duration(0))
}
