package timeline

import (
	"math"
	"testing"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newTestCore() *Core {
	return NewCore(NewState())
}

func mustTrack(t *testing.T, c *Core, kind string, order int) *Track {
	t.Helper()
	track, err := c.AddTrack(&AddTrackInput{Kind: kind, Order: order})
	if err != nil {
		t.Fatal(err)
	}
	return track
}

func TestAddClipUnknownTrack(t *testing.T) {
	c := newTestCore()
	if _, err := c.AddClip("nope", &AddClipInput{AssetID: "a1"}); err == nil {
		t.Fatal("expected error for unknown track")
	}
}

func TestAddClipLockedTrack(t *testing.T) {
	c := newTestCore()
	track := mustTrack(t, c, "video", 0)
	locked := true
	if _, err := c.EditTrack(track.ID, &EditTrackInput{Locked: &locked}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddClip(track.ID, &AddClipInput{AssetID: "a1"}); err == nil {
		t.Fatal("expected error for locked track")
	}
}

func TestRemoveClipIdempotent(t *testing.T) {
	c := newTestCore()
	track := mustTrack(t, c, "video", 0)
	clip, err := c.AddClip(track.ID, &AddClipInput{AssetID: "a1", EndTime: 5, Duration: 5})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.RemoveClip(clip.ID); err != nil {
		t.Fatal(err)
	}
	if err := c.RemoveClip(clip.ID); err != nil {
		t.Fatal("second remove should be a no-op, got:", err)
	}
	if err := c.RemoveClip("never-existed"); err != nil {
		t.Fatal(err)
	}
}

func TestSplitClip(t *testing.T) {
	c := newTestCore()
	track := mustTrack(t, c, "video", 0)
	clip, err := c.AddClip(track.ID, &AddClipInput{
		AssetID: "a1", StartTime: 0, EndTime: 10, Duration: 10,
	})
	if err != nil {
		t.Fatal(err)
	}

	first, second, err := c.SplitClip(clip.ID, 4)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != clip.ID {
		t.Fatal("first half must keep the original id")
	}
	if !almost(first.EndTime, 4) || !almost(first.Duration, 4) || !almost(first.TrimEnd, 6) {
		t.Fatalf("first half mismatch: %+v", first)
	}
	if second.ID == clip.ID {
		t.Fatal("second half must get a new id")
	}
	if !almost(second.StartTime, 4) || !almost(second.EndTime, 10) ||
		!almost(second.Duration, 10) || !almost(second.TrimStart, 4) {
		t.Fatalf("second half mismatch: %+v", second)
	}
	if !almost(second.EffectiveSpan(), 6) {
		t.Fatalf("second effective span = %.3f, want 6", second.EffectiveSpan())
	}

	// 分割点需落在片段区间内
	if _, _, err := c.SplitClip(second.ID, 4); err == nil {
		t.Fatal("split at boundary must fail")
	}
	if _, _, err := c.SplitClip(second.ID, 12); err == nil {
		t.Fatal("split outside must fail")
	}
}

func TestSplitClipTransition(t *testing.T) {
	c := newTestCore()
	track := mustTrack(t, c, "video", 0)
	clip, err := c.AddClip(track.ID, &AddClipInput{
		AssetID: "a1", StartTime: 0, EndTime: 10, Duration: 10,
		Transition: &Transition{
			In:  TransitionEdge{Kind: TransitionFade, Duration: 1},
			Out: TransitionEdge{Kind: TransitionZoom, Duration: 2},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	first, second, err := c.SplitClip(clip.ID, 5)
	if err != nil {
		t.Fatal(err)
	}
	if first.Transition.In.Kind != TransitionFade || first.Transition.Out.Kind != TransitionNone {
		t.Fatalf("first transition mismatch: %+v", first.Transition)
	}
	if second.Transition.In.Kind != TransitionNone || second.Transition.Out.Kind != TransitionZoom {
		t.Fatalf("second transition mismatch: %+v", second.Transition)
	}
}

func TestDuplicateClip(t *testing.T) {
	c := newTestCore()
	track := mustTrack(t, c, "video", 0)
	clip, err := c.AddClip(track.ID, &AddClipInput{
		AssetID: "a1", StartTime: 2, EndTime: 6, Duration: 8, TrimStart: 1, TrimEnd: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	dup, err := c.DuplicateClip(clip.ID)
	if err != nil {
		t.Fatal(err)
	}
	if dup.ID == clip.ID {
		t.Fatal("duplicate must get a new id")
	}
	if !almost(dup.StartTime, 6) || !almost(dup.EndTime, 10) {
		t.Fatalf("duplicate placement mismatch: %+v", dup)
	}
	if !almost(dup.TrimStart, clip.TrimStart) || !almost(dup.TrimEnd, clip.TrimEnd) {
		t.Fatal("duplicate must keep trims")
	}
	if dup.EffectiveSpan() <= 0 {
		t.Fatal("duplicate effective span must stay positive")
	}
}

func TestEditClipPartialPatch(t *testing.T) {
	c := newTestCore()
	track := mustTrack(t, c, "video", 0)
	clip, err := c.AddClip(track.ID, &AddClipInput{
		AssetID: "a1", StartTime: 0, EndTime: 5, Duration: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	start := 2.0
	out, err := c.EditClip(clip.ID, &EditClipInput{StartTime: &start})
	if err != nil {
		t.Fatal(err)
	}
	if !almost(out.StartTime, 2) || !almost(out.EndTime, 5) {
		t.Fatalf("partial patch mismatch: %+v", out)
	}
}

func TestActiveClips(t *testing.T) {
	c := newTestCore()
	top := mustTrack(t, c, "overlay", 5)
	bottom := mustTrack(t, c, "video", 1)
	hidden := mustTrack(t, c, "video", 3)
	visible := false
	if _, err := c.EditTrack(hidden.ID, &EditTrackInput{Visible: &visible}); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{top.ID, bottom.ID, hidden.ID} {
		if _, err := c.AddClip(id, &AddClipInput{AssetID: "a", StartTime: 0, EndTime: 10, Duration: 10}); err != nil {
			t.Fatal(err)
		}
	}

	active := c.ActiveClips(5)
	if len(active) != 2 {
		t.Fatalf("expected 2 active clips, got %d", len(active))
	}
	// 低 Order 轨道先绘制
	if active[0].Track.ID != bottom.ID || active[1].Track.ID != top.ID {
		t.Fatal("active clips must be ordered by track order ascending")
	}

	if got := c.ActiveClips(20); len(got) != 0 {
		t.Fatalf("expected no clips at t=20, got %d", len(got))
	}
}

func TestSelectClip(t *testing.T) {
	c := newTestCore()
	track := mustTrack(t, c, "video", 0)
	clip, err := c.AddClip(track.ID, &AddClipInput{AssetID: "a1", EndTime: 5, Duration: 5})
	if err != nil {
		t.Fatal(err)
	}
	c.SelectClip(clip.ID)
	if got := c.SelectedClip(); got == nil || got.ID != clip.ID {
		t.Fatal("selected clip mismatch")
	}
	if err := c.RemoveClip(clip.ID); err != nil {
		t.Fatal(err)
	}
	if got := c.SelectedClip(); got != nil {
		t.Fatal("selection must clear when the clip is removed")
	}
}

func TestResolveEffectsLastWins(t *testing.T) {
	base := Effects{Blur: 2, Brightness: 100, Contrast: 100, Saturation: 100}
	clip := Clip{
		Effects: &base,
		EffectSegments: []EffectSegment{
			{StartTime: 0, EndTime: 5, Effects: Effects{Brightness: 120, Contrast: 100, Saturation: 100}},
			{StartTime: 3, EndTime: 8, Effects: Effects{Grayscale: 100, Brightness: 100, Contrast: 100, Saturation: 100}},
		},
	}

	if eff := clip.ResolveEffects(1); !almost(eff.Brightness, 120) || eff.Grayscale != 0 {
		t.Fatalf("t=1 mismatch: %+v", eff)
	}
	// 重叠区间取定义靠后者
	if eff := clip.ResolveEffects(4); !almost(eff.Grayscale, 100) || !almost(eff.Brightness, 100) {
		t.Fatalf("t=4 mismatch: %+v", eff)
	}
	// 区间外回落到片段级参数
	if eff := clip.ResolveEffects(9); !almost(eff.Blur, 2) {
		t.Fatalf("t=9 mismatch: %+v", eff)
	}
}

func TestEffectsChainOrder(t *testing.T) {
	eff := Effects{Grayscale: 50, Blur: 3, Brightness: 100, Contrast: 140, Saturation: 100}
	chain := eff.Chain()
	want := []string{FilterBlur, FilterContrast, FilterGrayscale}
	if len(chain) != len(want) {
		t.Fatalf("chain length %d, want %d", len(chain), len(want))
	}
	for i, name := range want {
		if chain[i].Name != name {
			t.Fatalf("chain[%d] = %s, want %s", i, chain[i].Name, name)
		}
	}
}

func TestNeutralEffectsEmptyChain(t *testing.T) {
	if chain := NeutralEffects().Chain(); len(chain) != 0 {
		t.Fatalf("neutral effects must produce an empty chain, got %v", chain)
	}
	if !NeutralEffects().IsNeutral() {
		t.Fatal("neutral effects must report neutral")
	}
}

func TestResolveTransitionFade(t *testing.T) {
	clip := Clip{
		Duration: 10,
		Transition: &Transition{
			In:  TransitionEdge{Kind: TransitionFade, Duration: 2},
			Out: TransitionEdge{Kind: TransitionFade, Duration: 2},
		},
	}
	if r := clip.ResolveTransition(1); !almost(r.Opacity, 0.5) {
		t.Fatalf("in fade opacity = %.3f, want 0.5", r.Opacity)
	}
	if r := clip.ResolveTransition(5); !almost(r.Opacity, 1) {
		t.Fatalf("mid opacity = %.3f, want 1", r.Opacity)
	}
	if r := clip.ResolveTransition(9.5); !almost(r.Opacity, 0.25) {
		t.Fatalf("out fade opacity = %.3f, want 0.25", r.Opacity)
	}
}

func TestResolveTransitionSlideAndZoom(t *testing.T) {
	clip := Clip{
		Duration: 10,
		Transition: &Transition{
			In:  TransitionEdge{Kind: TransitionSlideLeft, Duration: 2},
			Out: TransitionEdge{Kind: TransitionZoom, Duration: 2},
		},
	}
	// 入场滑入：进度 0.25，画面偏在右侧 75%
	if r := clip.ResolveTransition(0.5); !almost(r.OffsetXFrac, 0.75) || !almost(r.Opacity, 1) {
		t.Fatalf("slide-left in mismatch: %+v", r)
	}
	// 出场缩放：进度 0.5，scale = 0.3 + 0.7*0.5
	if r := clip.ResolveTransition(9); !almost(r.Scale, 0.65) || !almost(r.Opacity, 0.5) {
		t.Fatalf("zoom out mismatch: %+v", r)
	}
}

func TestResolveTransitionOverlap(t *testing.T) {
	// 有效区间 1 秒，入出窗口各 1 秒，全程重叠
	clip := Clip{
		Duration: 1,
		Transition: &Transition{
			In:  TransitionEdge{Kind: TransitionFade, Duration: 1},
			Out: TransitionEdge{Kind: TransitionSlideUp, Duration: 1},
		},
	}
	r := clip.ResolveTransition(0.25)
	// 透明度取两侧较小值，几何量以出场为准
	if !almost(r.Opacity, 0.25) {
		t.Fatalf("overlap opacity = %.3f, want 0.25", r.Opacity)
	}
	if !almost(r.OffsetYFrac, -0.25) {
		t.Fatalf("overlap offsetY = %.3f, want -0.25", r.OffsetYFrac)
	}
}

func TestResolveTransitionNone(t *testing.T) {
	clip := Clip{Duration: 10}
	r := clip.ResolveTransition(0)
	if !almost(r.Opacity, 1) || !almost(r.Scale, 1) || r.OffsetXFrac != 0 || r.OffsetYFrac != 0 {
		t.Fatalf("no transition must be identity, got %+v", r)
	}
}

func TestRelativeTime(t *testing.T) {
	clip := Clip{StartTime: 2, EndTime: 8, Duration: 10, TrimStart: 1.5}
	if got := clip.RelativeTime(4); !almost(got, 3.5) {
		t.Fatalf("relative time = %.3f, want 3.5", got)
	}
}
