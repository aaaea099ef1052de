package state

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Lifecycle(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StatusIdle, s.Status)
	assert.False(t, s.IsActive())

	s.Activate("ch01.book.json")
	assert.Equal(t, StatusRunning, s.Status)
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, "ch01.book.json", s.Book)

	s.Offset = 4
	s.Fast = true
	s.SetParam("score", "10")
	s.StartWait(time.Second)

	s.Reset()
	assert.Equal(t, StatusIdle, s.Status)
	assert.Equal(t, 0, s.Offset)
	assert.Empty(t, s.Params)
	assert.False(t, s.Fast)
	assert.Zero(t, s.WaitRemaining)

	s.Reset()
	assert.Equal(t, StatusIdle, s.Status)
	assert.Empty(t, s.Params)
}

func TestSession_ActivateGetsNewID(t *testing.T) {
	s := NewSession()
	s.Activate("a")
	first := s.ID
	s.Activate("a")
	assert.NotEqual(t, first, s.ID)
}

func TestSession_TickWait(t *testing.T) {
	tests := []struct {
		name      string
		wait      time.Duration
		fast      bool
		ticks     []time.Duration
		released  bool
		remaining time.Duration
	}{
		{"not yet", 2 * time.Second, false, []time.Duration{time.Second}, false, time.Second},
		{"exact", 2 * time.Second, false, []time.Duration{2 * time.Second}, true, 0},
		{"overshoot", time.Second, false, []time.Duration{300 * time.Millisecond, 800 * time.Millisecond}, true, 0},
		{"fast releases on zero tick", 10 * time.Second, true, []time.Duration{0}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			s.Activate("b")
			s.Fast = tt.fast
			s.StartWait(tt.wait)
			var released bool
			for _, dt := range tt.ticks {
				released = s.TickWait(dt)
			}
			assert.Equal(t, tt.released, released)
			assert.Equal(t, tt.remaining, s.WaitRemaining)
		})
	}
}

func TestSession_TickWaitWhenNotWaiting(t *testing.T) {
	s := NewSession()
	assert.False(t, s.TickWait(time.Second))
}

func TestSession_Clone(t *testing.T) {
	s := NewSession()
	s.SetParam("k", "v")
	c := s.Clone()
	c.Params["k"] = "changed"
	v, _ := s.Param("k")
	assert.Equal(t, "v", v)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	s := NewSession()
	s.Activate("ch02.book.json")
	s.Offset = 12
	s.SetParam("route", "b")

	snap := s.Snapshot("slot1")
	require.NoError(t, snap.Validate())

	data, err := snap.Marshal()
	require.NoError(t, err)

	loaded, err := UnmarshalSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, "slot1", loaded.Slot)
	assert.Equal(t, s.ID, loaded.SessionID)
	assert.Equal(t, 12, loaded.Offset)
	assert.Equal(t, "b", loaded.Params["route"])

	s.SetParam("route", "c")
	assert.Equal(t, "b", snap.Params["route"], "snapshot must not alias session params")
}

func TestSnapshot_Validate(t *testing.T) {
	assert.Error(t, (&Snapshot{Book: "b"}).Validate())
	assert.Error(t, (&Snapshot{Slot: "s"}).Validate())
	assert.Error(t, (&Snapshot{Slot: "s", Book: "b", Offset: -1}).Validate())
	assert.NoError(t, (&Snapshot{Slot: "s", Book: "b"}).Validate())
}

func TestUnmarshalSnapshot_Invalid(t *testing.T) {
	_, err := UnmarshalSnapshot([]byte("{"))
	assert.ErrorContains(t, err, "failed to unmarshal snapshot")
}
