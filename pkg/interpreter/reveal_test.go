package interpreter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReveal(t *testing.T) {
	r := newReveal(60 * time.Millisecond)
	r.Start("A……B")
	assert.False(t, r.Done())
	assert.Equal(t, "", r.Visible())

	r.Tick(59 * time.Millisecond)
	assert.Equal(t, "", r.Visible())

	r.Tick(time.Millisecond)
	assert.Equal(t, "A", r.Visible())

	r.Tick(120 * time.Millisecond)
	assert.Equal(t, "A……", r.Visible())

	r.Tick(time.Hour)
	assert.True(t, r.Done())
	assert.Equal(t, "A……B", r.Visible())
	assert.Equal(t, "A……B", r.Text())
}

func TestReveal_CompleteAndClear(t *testing.T) {
	r := newReveal(0)
	r.Start("hello")
	r.Complete()
	assert.True(t, r.Done())
	assert.Equal(t, "hello", r.Visible())

	r.Clear()
	assert.True(t, r.Done())
	assert.Equal(t, "", r.Visible())
}
