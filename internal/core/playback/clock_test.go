package playback

import (
	"math"
	"testing"
	"time"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// fakeNow 可手动拨动的时钟源
type fakeNow struct {
	t time.Time
}

func (f *fakeNow) now() time.Time { return f.t }

func (f *fakeNow) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestClock(duration float64, fps int) (*Clock, *fakeNow) {
	src := fakeNow{t: time.Unix(1000, 0)}
	c := NewClock(duration, fps)
	c.now = src.now
	return c, &src
}

func TestTickAdvancesByWallClock(t *testing.T) {
	c, src := newTestClock(10, 30)
	c.Play()
	src.advance(500 * time.Millisecond)
	c.Tick()
	if got := c.Current(); !almost(got, 0.5) {
		t.Fatalf("current = %.3f, want 0.5", got)
	}
	src.advance(2 * time.Second)
	c.Tick()
	if got := c.Current(); !almost(got, 2.5) {
		t.Fatalf("current = %.3f, want 2.5", got)
	}
}

func TestTickStopsAtDuration(t *testing.T) {
	c, src := newTestClock(1, 30)
	c.Play()
	src.advance(5 * time.Second)
	c.Tick()
	st := c.Status()
	if !almost(st.CurrentTime, 1) {
		t.Fatalf("current = %.3f, want clamp at 1", st.CurrentTime)
	}
	if st.Playing {
		t.Fatal("clock must pause at the end")
	}
}

func TestPlayAtEndIsNoop(t *testing.T) {
	c, _ := newTestClock(1, 30)
	c.Seek(1)
	c.Play()
	if c.Status().Playing {
		t.Fatal("play at the end must not start")
	}
}

func TestSeekClamps(t *testing.T) {
	c, _ := newTestClock(10, 30)
	if got := c.Seek(-3); !almost(got, 0) {
		t.Fatalf("seek(-3) = %.3f, want 0", got)
	}
	if got := c.Seek(99); !almost(got, 10) {
		t.Fatalf("seek(99) = %.3f, want 10", got)
	}
	if got := c.Seek(4.2); !almost(got, 4.2) {
		t.Fatalf("seek(4.2) = %.3f", got)
	}
}

func TestSeekResetsTickBase(t *testing.T) {
	// seek 之后的 Tick 只统计 seek 以来的流逝时间
	c, src := newTestClock(10, 30)
	c.Play()
	src.advance(1 * time.Second)
	c.Seek(5)
	src.advance(1 * time.Second)
	c.Tick()
	if got := c.Current(); !almost(got, 6) {
		t.Fatalf("current = %.3f, want 6", got)
	}
}

func TestStepFrame(t *testing.T) {
	c, _ := newTestClock(10, 30)
	c.Seek(5)
	c.Play()
	if got := c.StepFrame(1); !almost(got, 5+1.0/30) {
		t.Fatalf("step +1 = %.5f", got)
	}
	if c.Status().Playing {
		t.Fatal("stepping must pause playback")
	}
	if got := c.StepFrame(-2); !almost(got, 5-1.0/30) {
		t.Fatalf("step -2 = %.5f", got)
	}
	c.Seek(0)
	if got := c.StepFrame(-1); !almost(got, 0) {
		t.Fatalf("step below zero = %.5f, want 0", got)
	}
}

func TestSetZoomClamps(t *testing.T) {
	c, _ := newTestClock(10, 30)
	if got := c.SetZoom(0.01); !almost(got, MinZoom) {
		t.Fatalf("zoom = %.3f, want %.1f", got, MinZoom)
	}
	if got := c.SetZoom(50); !almost(got, MaxZoom) {
		t.Fatalf("zoom = %.3f, want %.0f", got, float64(MaxZoom))
	}
	if got := c.SetZoom(2.5); !almost(got, 2.5) {
		t.Fatalf("zoom = %.3f", got)
	}
}

func TestSetDurationClampsCurrent(t *testing.T) {
	c, _ := newTestClock(10, 30)
	c.Seek(8)
	c.Play()
	c.SetDuration(5)
	st := c.Status()
	if !almost(st.CurrentTime, 5) || st.Playing {
		t.Fatalf("after shrink: %+v", st)
	}
}

func TestToggle(t *testing.T) {
	c, _ := newTestClock(10, 30)
	if !c.Toggle() {
		t.Fatal("first toggle should start playback")
	}
	if c.Toggle() {
		t.Fatal("second toggle should pause")
	}
}
