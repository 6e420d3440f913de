package framepipe

import (
	"strings"
	"testing"
)

func TestNewExtractorValidation(t *testing.T) {
	if _, err := NewExtractor(Config{Path: "a.mp4", Width: 0, Height: 1080, FPS: 30}); err == nil {
		t.Fatal("expected resolution error")
	}
	if _, err := NewExtractor(Config{Path: "a.mp4", Width: 1920, Height: 1080, FPS: 0}); err == nil {
		t.Fatal("expected fps error")
	}
	if _, err := NewExtractor(Config{Width: 1920, Height: 1080, FPS: 30}); err == nil {
		t.Fatal("expected path error")
	}
}

func TestExtractorFrameSize(t *testing.T) {
	e, err := NewExtractor(Config{Path: "a.mp4", Width: 640, Height: 360, FPS: 30})
	if err != nil {
		t.Fatal(err)
	}
	if e.FrameSize() != 640*360*4 {
		t.Fatalf("frame size = %d, want %d", e.FrameSize(), 640*360*4)
	}
}

func TestExtractorBuildArgs(t *testing.T) {
	e, err := NewExtractor(Config{Path: "/media/a.mp4", Width: 640, Height: 360, FPS: 30})
	if err != nil {
		t.Fatal(err)
	}

	args := strings.Join(e.buildArgs(12.5), " ")
	for _, want := range []string{
		"-ss 12.500",
		"-i /media/a.mp4",
		"-f rawvideo",
		"-pix_fmt rgba",
		"fps=30,scale=640:360",
		"pipe:1",
	} {
		if !strings.Contains(args, want) {
			t.Fatalf("args missing %q: %s", want, args)
		}
	}

	// 从头读取时不加 -ss
	if strings.Contains(strings.Join(e.buildArgs(0), " "), "-ss") {
		t.Fatal("args must not seek when starting at zero")
	}
}

func TestMuxerBuildArgs(t *testing.T) {
	m, err := NewMuxer(MuxConfig{OutputPath: "/out/v.mp4", Width: 1920, Height: 1080, FPS: 30, BitrateKbps: 4000})
	if err != nil {
		t.Fatal(err)
	}
	args := strings.Join(m.buildArgs(), " ")
	for _, want := range []string{
		"-f rawvideo",
		"-pix_fmt rgba",
		"-s 1920x1080",
		"-i pipe:0",
		"-c:v libx264",
		"-b:v 4000k",
		"/out/v.mp4",
	} {
		if !strings.Contains(args, want) {
			t.Fatalf("args missing %q: %s", want, args)
		}
	}
}

func TestMuxerWriteBeforeStart(t *testing.T) {
	m, err := NewMuxer(MuxConfig{OutputPath: "/out/v.mp4", Width: 2, Height: 2, FPS: 30})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.WriteFrame(make([]byte, m.FrameSize())); err == nil {
		t.Fatal("expected error before start")
	}
}
