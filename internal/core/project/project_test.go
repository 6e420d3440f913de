package project

import (
	"testing"

	"github.com/ixugo/goddd/domain/uniqueid"
	"github.com/vidit-app/vidit/internal/conf"
)

func TestApplyDefaults(t *testing.T) {
	c := NewCore(nil, uniqueid.Core{}, WithConfig(&conf.Editor{
		DefaultWidth:    1920,
		DefaultHeight:   1080,
		DefaultFPS:      30,
		DefaultDuration: 60,
	}))

	p := Project{Duration: 120}
	c.applyDefaults(&p)
	if p.Width != 1920 || p.Height != 1080 || p.FPS != 30 {
		t.Fatalf("defaults not applied: %+v", p)
	}
	if p.Duration != 120 {
		t.Fatalf("caller duration must be kept, got %v", p.Duration)
	}

	q := Project{Width: 1280, Height: 720, FPS: 24}
	c.applyDefaults(&q)
	if q.Width != 1280 || q.Height != 720 || q.FPS != 24 {
		t.Fatalf("caller fields overwritten: %+v", q)
	}
	if q.Duration != 60 {
		t.Fatalf("default duration = %v, want 60", q.Duration)
	}
}

func TestApplyDefaultsWithoutConfig(t *testing.T) {
	c := NewCore(nil, uniqueid.Core{})
	p := Project{Duration: 42, Width: 1280}
	c.applyDefaults(&p)
	if p.Duration != 42 {
		t.Fatalf("caller duration dropped without config: %v", p.Duration)
	}
	if p.Width != 1280 {
		t.Fatalf("caller width dropped without config: %v", p.Width)
	}
}
