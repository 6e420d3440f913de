package timeline

// TrackKind 轨道类型，决定渲染时的占位配色与语义
type TrackKind string

const (
	TrackVideo   TrackKind = "video"
	TrackAudio   TrackKind = "audio"
	TrackText    TrackKind = "text"
	TrackOverlay TrackKind = "overlay"
)

// Valid 校验轨道类型是否为已知值
func (k TrackKind) Valid() bool {
	switch k {
	case TrackVideo, TrackAudio, TrackText, TrackOverlay:
		return true
	}
	return false
}

// Track 时间轴上的一个图层
// Order 越小越先绘制，越大越靠上层
type Track struct {
	ID      string    `json:"id"`
	Kind    TrackKind `json:"kind"`
	Order   int       `json:"order"`
	Locked  bool      `json:"locked"`
	Visible bool      `json:"visible"`
	Clips   []*Clip   `json:"clips"`
}

// Clip 放置在轨道上的一段素材引用
// 时间单位均为秒；StartTime/EndTime 是项目时间轴时间，
// TrimStart/TrimEnd 是从素材头尾裁掉的源素材时长
type Clip struct {
	ID        string  `json:"id"`
	TrackID   string  `json:"track_id"`
	AssetID   string  `json:"asset_id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	// Duration 裁剪前覆盖的源素材时长
	Duration  float64 `json:"duration"`
	TrimStart float64 `json:"trim_start"`
	TrimEnd   float64 `json:"trim_end"`

	Effects        *Effects        `json:"effects,omitempty"`
	EffectSegments []EffectSegment `json:"effect_segments,omitempty"`
	Transition     *Transition     `json:"transition,omitempty"`
}

// EffectiveSpan 有效可播放时长 = duration - trimStart - trimEnd
func (c *Clip) EffectiveSpan() float64 {
	return c.Duration - c.TrimStart - c.TrimEnd
}

// ActiveAt 片段在时间轴时间 t 是否处于活动区间
func (c *Clip) ActiveAt(t float64) bool {
	return t >= c.StartTime && t <= c.EndTime
}

// RelativeTime 时间轴时间换算为片段相对时间（含头部裁剪偏移）
// 视频句柄按此时间在源素材内 seek
func (c *Clip) RelativeTime(t float64) float64 {
	return t - c.StartTime + c.TrimStart
}

// Effects 六项静态滤镜参数
// 亮度/对比度/饱和度以 100 为中性值，其余以 0 为中性值
type Effects struct {
	Blur       float64 `json:"blur"`       // 模糊半径 px，>=0
	Brightness float64 `json:"brightness"` // 百分比，100 中性
	Contrast   float64 `json:"contrast"`   // 百分比，100 中性
	Saturation float64 `json:"saturation"` // 百分比，100 中性
	Sepia      float64 `json:"sepia"`      // 百分比 [0,100]
	Grayscale  float64 `json:"grayscale"`  // 百分比 [0,100]
}

// NeutralEffects 全中性参数
func NeutralEffects() Effects {
	return Effects{Brightness: 100, Contrast: 100, Saturation: 100}
}

// IsNeutral 是否全部为中性值（滤镜链为空）
func (e Effects) IsNeutral() bool {
	return e.Blur == 0 && e.Brightness == 100 && e.Contrast == 100 &&
		e.Saturation == 100 && e.Sepia == 0 && e.Grayscale == 0
}

// EffectSegment 片段内一段时间区间的滤镜覆盖
// StartTime/EndTime 为片段相对时间
type EffectSegment struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Effects   Effects `json:"effects"`
}

// TransitionKind 转场类型
type TransitionKind string

const (
	TransitionNone       TransitionKind = "none"
	TransitionFade       TransitionKind = "fade"
	TransitionSlideLeft  TransitionKind = "slide-left"
	TransitionSlideRight TransitionKind = "slide-right"
	TransitionSlideUp    TransitionKind = "slide-up"
	TransitionSlideDown  TransitionKind = "slide-down"
	TransitionZoom       TransitionKind = "zoom"
)

// Valid 校验转场类型是否为已知值
func (k TransitionKind) Valid() bool {
	switch k {
	case TransitionNone, TransitionFade, TransitionSlideLeft, TransitionSlideRight,
		TransitionSlideUp, TransitionSlideDown, TransitionZoom:
		return true
	}
	return false
}

// TransitionEdge 单侧转场描述
type TransitionEdge struct {
	Kind     TransitionKind `json:"kind"`
	Duration float64        `json:"duration"` // 秒
}

// Transition 片段入场/出场转场
// In 作用于有效区间的前 Duration 秒，Out 作用于最后 Duration 秒
type Transition struct {
	In  TransitionEdge `json:"in"`
	Out TransitionEdge `json:"out"`
}
