package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondsToUnits(t *testing.T) {
	tests := []struct {
		seconds int
		want    int
	}{
		{60, 100},
		{1, 2}, // 1.67 pulses rounds up
		{3, 5},
		{0, 0},
		{-5, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SecondsToUnits(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestRemainingDisplaySeconds(t *testing.T) {
	assert.Equal(t, 60, RemainingDisplaySeconds(&RegenTimer{RemainingUnits: 100}))
	assert.Equal(t, 6, RemainingDisplaySeconds(&RegenTimer{RemainingUnits: 10}))
	assert.Equal(t, 1, RemainingDisplaySeconds(&RegenTimer{RemainingUnits: 1}))
	assert.Equal(t, 0, RemainingDisplaySeconds(&RegenTimer{RemainingUnits: -3}))
}

func TestIsUrgent(t *testing.T) {
	assert.True(t, IsUrgent(6))
	assert.True(t, IsUrgent(18))
	assert.False(t, IsUrgent(19))
}

func TestLookupDisplay(t *testing.T) {
	st := NewState()

	_, ok := st.LookupDisplay(1)
	assert.False(t, ok, "unbound index")

	key := st.Resolve(1, 50, 0, At(10, 10))
	_, ok = st.LookupDisplay(1)
	assert.False(t, ok, "bound but no timer")

	tm := st.Timers.GetOrCreate(key)
	tm.State = StateWaitingForFirstHeal
	_, ok = st.LookupDisplay(1)
	assert.False(t, ok, "waiting timers are suppressed")

	tm.State = StateRunning
	tm.RemainingUnits = 10
	d, ok := st.LookupDisplay(1)
	require.True(t, ok)
	assert.Equal(t, Display{Seconds: 6, Urgent: true}, d)

	tm.RemainingUnits = 100
	d, _ = st.LookupDisplay(1)
	assert.Equal(t, Display{Seconds: 60, Urgent: false}, d)
}
