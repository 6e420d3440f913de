package compositor

import (
	"context"
	"testing"
	"time"

	"github.com/vidit-app/vidit/internal/core/timeline"
)

// stubResolver 全部素材视为缺失，句柄池退化为占位色
type stubResolver struct {
	sources map[string]AssetSource
}

func (s *stubResolver) ResolveAsset(id string) (AssetSource, bool) {
	src, ok := s.sources[id]
	return src, ok
}

func newTestCompositor(t *testing.T) (*Core, *timeline.Core) {
	t.Helper()
	tl := timeline.NewCore(timeline.NewState())
	c := NewCore(tl, &stubResolver{}, 64, 36, 30, 100*time.Millisecond)
	return c, tl
}

func TestCompositeEmptyTimelineIsBlack(t *testing.T) {
	c, _ := newTestCompositor(t)
	frame, err := c.Composite(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if frame.Rect.Dx() != 64 || frame.Rect.Dy() != 36 {
		t.Fatalf("frame size %v", frame.Rect)
	}
	for i := 0; i < len(frame.Pix); i += 4 {
		if frame.Pix[i] != 0 || frame.Pix[i+1] != 0 || frame.Pix[i+2] != 0 || frame.Pix[i+3] != 0xff {
			t.Fatal("empty timeline must render opaque black")
		}
	}
}

func TestCompositePlaceholderClip(t *testing.T) {
	c, tl := newTestCompositor(t)
	track, err := tl.AddTrack(&timeline.AddTrackInput{Kind: "video", Order: 0})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tl.AddClip(track.ID, &timeline.AddClipInput{
		AssetID: "missing", StartTime: 0, EndTime: 10, Duration: 10,
	}); err != nil {
		t.Fatal(err)
	}

	frame, err := c.Composite(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	want := placeholderColor(timeline.TrackVideo)
	if frame.Pix[0] != want.R || frame.Pix[1] != want.G || frame.Pix[2] != want.B {
		t.Fatalf("pixel = %d %d %d, want placeholder color", frame.Pix[0], frame.Pix[1], frame.Pix[2])
	}
}

func TestCompositeTrackOrder(t *testing.T) {
	// 高 Order 轨道后绘制，覆盖低 Order 轨道
	c, tl := newTestCompositor(t)
	bottom, _ := tl.AddTrack(&timeline.AddTrackInput{Kind: "video", Order: 0})
	top, _ := tl.AddTrack(&timeline.AddTrackInput{Kind: "overlay", Order: 1})
	for _, id := range []string{bottom.ID, top.ID} {
		if _, err := tl.AddClip(id, &timeline.AddClipInput{
			AssetID: "missing", StartTime: 0, EndTime: 10, Duration: 10,
		}); err != nil {
			t.Fatal(err)
		}
	}

	frame, err := c.Composite(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	want := placeholderColor(timeline.TrackOverlay)
	if frame.Pix[0] != want.R || frame.Pix[1] != want.G || frame.Pix[2] != want.B {
		t.Fatalf("top pixel = %d %d %d, overlay track must win", frame.Pix[0], frame.Pix[1], frame.Pix[2])
	}
}

func TestCompositeFadeBlendsWithBackground(t *testing.T) {
	c, tl := newTestCompositor(t)
	track, _ := tl.AddTrack(&timeline.AddTrackInput{Kind: "video", Order: 0})
	if _, err := tl.AddClip(track.ID, &timeline.AddClipInput{
		AssetID: "missing", StartTime: 0, EndTime: 10, Duration: 10,
		Transition: &timeline.Transition{
			In: timeline.TransitionEdge{Kind: timeline.TransitionFade, Duration: 2},
		},
	}); err != nil {
		t.Fatal(err)
	}

	// 渐入中点，占位色以 50% 透明度叠在黑底上
	frame, err := c.Composite(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	want := placeholderColor(timeline.TrackVideo)
	got := frame.Pix[0]
	half := uint8(float64(want.R) * 0.5)
	if got < half-1 || got > half+1 {
		t.Fatalf("faded pixel = %d, want about %d", got, half)
	}
}

func TestCompositeHiddenTrackSkipped(t *testing.T) {
	c, tl := newTestCompositor(t)
	track, _ := tl.AddTrack(&timeline.AddTrackInput{Kind: "video", Order: 0})
	if _, err := tl.AddClip(track.ID, &timeline.AddClipInput{
		AssetID: "missing", StartTime: 0, EndTime: 10, Duration: 10,
	}); err != nil {
		t.Fatal(err)
	}
	visible := false
	if _, err := tl.EditTrack(track.ID, &timeline.EditTrackInput{Visible: &visible}); err != nil {
		t.Fatal(err)
	}

	frame, err := c.Composite(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if frame.Pix[0] != 0 {
		t.Fatal("hidden track must not render")
	}
}

func TestCompositeContextCancelled(t *testing.T) {
	c, tl := newTestCompositor(t)
	track, _ := tl.AddTrack(&timeline.AddTrackInput{Kind: "video", Order: 0})
	if _, err := tl.AddClip(track.ID, &timeline.AddClipInput{
		AssetID: "missing", StartTime: 0, EndTime: 10, Duration: 10,
	}); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Composite(ctx, 5); err == nil {
		t.Fatal("cancelled context must abort composition")
	}
}

func TestPoolReconcileReleasesRemovedClips(t *testing.T) {
	c, tl := newTestCompositor(t)
	track, _ := tl.AddTrack(&timeline.AddTrackInput{Kind: "video", Order: 0})
	clip, err := tl.AddClip(track.ID, &timeline.AddClipInput{
		AssetID: "missing", StartTime: 0, EndTime: 10, Duration: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Composite(context.Background(), 5); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.pool.handles.Load(clip.ID); !ok {
		t.Fatal("handle must exist after composite")
	}

	// 删除片段后变更回调回收句柄
	if err := tl.RemoveClip(clip.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.pool.handles.Load(clip.ID); ok {
		t.Fatal("handle must be released after clip removal")
	}
}
