package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestVirtual_AfterFuncFiresAtDeadline(t *testing.T) {
	v := NewVirtual(epoch)
	var firedAt time.Time
	v.AfterFunc(100*time.Millisecond, func() { firedAt = v.Now() })

	require.Equal(t, 0, v.Advance(99*time.Millisecond))
	require.True(t, firedAt.IsZero())

	require.Equal(t, 1, v.Advance(time.Millisecond))
	require.Equal(t, epoch.Add(100*time.Millisecond), firedAt)
	require.Equal(t, 0, v.Pending())
}

func TestVirtual_EveryRepeatsUntilStopped(t *testing.T) {
	v := NewVirtual(epoch)
	count := 0
	tk := v.Every(50*time.Millisecond, func() { count++ })

	v.Advance(500 * time.Millisecond)
	require.Equal(t, 10, count)

	require.True(t, tk.Stop())
	require.False(t, tk.Stop(), "second stop reports inactive")
	v.Advance(time.Second)
	require.Equal(t, 10, count)
	require.Equal(t, 0, v.Pending())
}

func TestVirtual_TickerCanStopItself(t *testing.T) {
	v := NewVirtual(epoch)
	count := 0
	var tk Timer
	tk = v.Every(10*time.Millisecond, func() {
		count++
		if count == 3 {
			tk.Stop()
		}
	})
	v.Advance(time.Second)
	require.Equal(t, 3, count)
	require.Equal(t, 0, v.Pending())
}

func TestVirtual_SameInstantKeepsEnqueueOrder(t *testing.T) {
	v := NewVirtual(epoch)
	var order []string
	v.AfterFunc(time.Second, func() { order = append(order, "a") })
	v.AfterFunc(time.Second, func() { order = append(order, "b") })
	v.Post(func() { order = append(order, "posted") })

	v.Advance(time.Second)
	require.Equal(t, []string{"posted", "a", "b"}, order)
}

func TestVirtual_StoppedTimerNeverFires(t *testing.T) {
	v := NewVirtual(epoch)
	fired := false
	tm := v.AfterFunc(time.Millisecond, func() { fired = true })
	require.True(t, tm.Stop())
	v.Advance(time.Second)
	require.False(t, fired)
}

func TestVirtual_CallbackSchedulesWithinSameAdvance(t *testing.T) {
	v := NewVirtual(epoch)
	var times []time.Duration
	v.AfterFunc(10*time.Millisecond, func() {
		times = append(times, v.Now().Sub(epoch))
		v.AfterFunc(10*time.Millisecond, func() {
			times = append(times, v.Now().Sub(epoch))
		})
	})
	v.Advance(100 * time.Millisecond)
	require.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, times)
	require.Equal(t, epoch.Add(100*time.Millisecond), v.Now())
}
