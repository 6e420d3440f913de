package timeline

// AddTrackInput 新增轨道入参
type AddTrackInput struct {
	Kind  string `json:"kind" binding:"required"`
	Order int    `json:"order"`
}

// EditTrackInput 轨道部分更新入参，nil 字段不变更
type EditTrackInput struct {
	Order   *int  `json:"order"`
	Locked  *bool `json:"locked"`
	Visible *bool `json:"visible"`
}

// AddClipInput 新增片段入参
type AddClipInput struct {
	AssetID   string  `json:"asset_id" binding:"required"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Duration  float64 `json:"duration"`
	TrimStart float64 `json:"trim_start"`
	TrimEnd   float64 `json:"trim_end"`

	Effects        *Effects        `json:"effects"`
	EffectSegments []EffectSegment `json:"effect_segments"`
	Transition     *Transition     `json:"transition"`
}

// EditClipInput 片段部分更新入参，nil 字段不变更
// 拖拽中的中间态不做数值校验
type EditClipInput struct {
	StartTime *float64 `json:"start_time"`
	EndTime   *float64 `json:"end_time"`
	Duration  *float64 `json:"duration"`
	TrimStart *float64 `json:"trim_start"`
	TrimEnd   *float64 `json:"trim_end"`

	Effects        *Effects        `json:"effects"`
	EffectSegments []EffectSegment `json:"effect_segments"`
	Transition     *Transition     `json:"transition"`
}

// SplitClipInput 分割片段入参
type SplitClipInput struct {
	Time float64 `json:"time"`
}
