package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestRealClock(t *testing.T) {
	var c Clock = RealClock{}
	before := time.Now()
	assert.False(t, c.Now().Before(before))

	tk := c.NewTicker(time.Millisecond)
	defer tk.Stop()
	select {
	case <-tk.C():
	case <-time.After(time.Second):
		t.Fatal("real ticker did not fire")
	}
}

func TestMockClock_AdvanceFiresDueTickers(t *testing.T) {
	c := NewMockClock(epoch)
	tk := c.NewTicker(10 * time.Millisecond)
	require.Equal(t, 1, c.Tickers())

	c.Advance(5 * time.Millisecond)
	select {
	case <-tk.C():
		t.Fatal("ticker fired early")
	default:
	}

	c.Advance(5 * time.Millisecond)
	select {
	case got := <-tk.C():
		assert.Equal(t, epoch.Add(10*time.Millisecond), got)
	default:
		t.Fatal("ticker did not fire at its deadline")
	}
	assert.Equal(t, epoch.Add(10*time.Millisecond), c.Now())
}

func TestMockClock_DropsTicksWhenFull(t *testing.T) {
	c := NewMockClock(epoch)
	tk := c.NewTicker(time.Second)
	c.Advance(time.Second)
	c.Advance(time.Second)

	<-tk.C()
	select {
	case <-tk.C():
		t.Fatal("expected the second tick to be dropped")
	default:
	}
}

func TestMockTicker_Stop(t *testing.T) {
	c := NewMockClock(epoch)
	tk := c.NewTicker(time.Second)
	tk.Stop()
	c.Advance(time.Hour)
	select {
	case <-tk.C():
		t.Fatal("stopped ticker fired")
	default:
	}
}
