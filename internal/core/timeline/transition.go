package timeline

// Render 转场求解结果，由合成器换算为像素量
// OffsetXFrac/OffsetYFrac 为画面宽/高的比例偏移
type Render struct {
	Opacity     float64
	OffsetXFrac float64
	OffsetYFrac float64
	Scale       float64
}

// NeutralRender 无转场时的恒等绘制参数
func NeutralRender() Render {
	return Render{Opacity: 1, Scale: 1}
}

// ResolveTransition 计算有效区间内位置 ct 的转场绘制参数
// ct 为片段可见区间内的相对时间 [0, span]。
// 入场窗口覆盖前 In.Duration 秒，进度 p 从 0 升到 1；
// 出场窗口覆盖最后 Out.Duration 秒，进度 p 从 1 降到 0。
// 两窗口同时命中时透明度取较小值，几何量以出场为准
func (c *Clip) ResolveTransition(ct float64) Render {
	r := NeutralRender()
	tr := c.Transition
	if tr == nil {
		return r
	}
	span := c.EffectiveSpan()

	if tr.In.Kind != TransitionNone && tr.In.Duration > 0 && ct < tr.In.Duration {
		p := clamp01(ct / tr.In.Duration)
		r = applyEdge(r, tr.In.Kind, p, true)
	}
	if tr.Out.Kind != TransitionNone && tr.Out.Duration > 0 && span-ct < tr.Out.Duration {
		p := clamp01((span - ct) / tr.Out.Duration)
		out := applyEdge(NeutralRender(), tr.Out.Kind, p, false)
		if out.Opacity < r.Opacity {
			r.Opacity = out.Opacity
		}
		r.OffsetXFrac = out.OffsetXFrac
		r.OffsetYFrac = out.OffsetYFrac
		r.Scale = out.Scale
	}
	return r
}

// applyEdge 单侧转场在进度 p 处的绘制参数
// p=1 为完全可见；入场从画面外滑入，出场朝同名方向滑出
func applyEdge(r Render, kind TransitionKind, p float64, in bool) Render {
	rest := 1 - p
	switch kind {
	case TransitionFade:
		r.Opacity = p
	case TransitionSlideLeft:
		if in {
			r.OffsetXFrac = rest
		} else {
			r.OffsetXFrac = -rest
		}
	case TransitionSlideRight:
		if in {
			r.OffsetXFrac = -rest
		} else {
			r.OffsetXFrac = rest
		}
	case TransitionSlideUp:
		if in {
			r.OffsetYFrac = rest
		} else {
			r.OffsetYFrac = -rest
		}
	case TransitionSlideDown:
		if in {
			r.OffsetYFrac = -rest
		} else {
			r.OffsetYFrac = rest
		}
	case TransitionZoom:
		r.Scale = 0.3 + 0.7*p
		r.Opacity = p
	}
	return r
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
