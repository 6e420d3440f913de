package capture

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ixugo/goddd/domain/uniqueid"
	"github.com/vidit-app/vidit/internal/conf"
)

func TestExportFilename(t *testing.T) {
	at := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
	if got := exportFilename("My Project", at); got != "My_Project-20260901-153000.mp4" {
		t.Fatalf("filename = %s", got)
	}
	if got := exportFilename("a/b:c", at); got != "a_b_c-20260901-153000.mp4" {
		t.Fatalf("filename = %s", got)
	}
	if got := exportFilename("  ", at); got != "untitled-20260901-153000.mp4" {
		t.Fatalf("filename = %s", got)
	}
}

func TestGetFullPath(t *testing.T) {
	c := NewCore(nil, uniqueid.Core{}, WithConfig(&conf.Export{StorageDir: "/data/exports"}))
	if got := c.GetFullPath("a.mp4"); got != "/data/exports/a.mp4" {
		t.Fatalf("full path = %s", got)
	}
	if got := c.GetFullPath("/abs/a.mp4"); got != "/abs/a.mp4" {
		t.Fatalf("absolute path must pass through, got %s", got)
	}
	if got := c.GetFullPath("/data/exports/a.mp4"); got != "/data/exports/a.mp4" {
		t.Fatalf("prefixed path must pass through, got %s", got)
	}
}

func TestReserveSingleJobPerProject(t *testing.T) {
	c := NewCore(nil, uniqueid.Core{})
	if !c.reserve("pro1", func() {}) {
		t.Fatal("first reserve must win")
	}
	if c.reserve("pro1", func() {}) {
		t.Fatal("second reserve on same project must lose")
	}
	c.release("pro1")
	if !c.reserve("pro1", func() {}) {
		t.Fatal("reserve after release must win")
	}
	c.release("pro1")

	// 并发抢占同一项目，只允许一个成功
	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.reserve("pro2", func() {}) {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("concurrent reserve wins = %d, want 1", wins)
	}
	c.release("pro2")
}

func TestIsEnabled(t *testing.T) {
	if NewCore(nil, uniqueid.Core{}).IsEnabled() {
		t.Fatal("nil conf must disable export")
	}
	if NewCore(nil, uniqueid.Core{}, WithConfig(&conf.Export{Disabled: true})).IsEnabled() {
		t.Fatal("disabled conf must disable export")
	}
	if !NewCore(nil, uniqueid.Core{}, WithConfig(&conf.Export{})).IsEnabled() {
		t.Fatal("default conf must enable export")
	}
}
