package timeline

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/ixugo/goddd/pkg/reason"
)

// Tracks 返回当前轨道快照
// 返回副本，合成器逐帧读取时不持有内部锁；帧间发生的编辑
// 允许造成单帧瑕疵，但不会破坏内部结构
func (c *Core) Tracks() []*Track {
	c.state.mu.RLock()
	defer c.state.mu.RUnlock()
	return c.snapshotLocked()
}

func (c *Core) snapshotLocked() []*Track {
	out := make([]*Track, 0, len(c.state.tracks))
	for _, t := range c.state.tracks {
		cp := *t
		cp.Clips = make([]*Clip, len(t.Clips))
		copy(cp.Clips, t.Clips)
		out = append(out, &cp)
	}
	return out
}

// AddTrack 新增轨道
func (c *Core) AddTrack(in *AddTrackInput) (*Track, error) {
	if !TrackKind(in.Kind).Valid() {
		return nil, reason.ErrBadRequest.Withf("unknown track kind %q", in.Kind)
	}

	c.state.mu.Lock()
	track := Track{
		ID:      uuid.NewString(),
		Kind:    TrackKind(in.Kind),
		Order:   in.Order,
		Visible: true,
		Clips:   make([]*Clip, 0, 4),
	}
	c.state.tracks = append(c.state.tracks, &track)
	c.state.mu.Unlock()

	c.notify()
	return &track, nil
}

// RemoveTrack 删除轨道及其全部片段，轨道不存在时为幂等空操作
func (c *Core) RemoveTrack(trackID string) {
	c.state.mu.Lock()
	kept := c.state.tracks[:0]
	for _, t := range c.state.tracks {
		if t.ID != trackID {
			kept = append(kept, t)
		}
	}
	c.state.tracks = kept
	c.state.mu.Unlock()

	c.notify()
}

// EditTrack 部分更新轨道属性
func (c *Core) EditTrack(trackID string, in *EditTrackInput) (*Track, error) {
	c.state.mu.Lock()
	track := c.findTrackLocked(trackID)
	if track == nil {
		c.state.mu.Unlock()
		return nil, reason.ErrNotFound.Withf("track[%s] not found", trackID)
	}
	if in.Order != nil {
		track.Order = *in.Order
	}
	if in.Locked != nil {
		track.Locked = *in.Locked
	}
	if in.Visible != nil {
		track.Visible = *in.Visible
	}
	out := *track
	c.state.mu.Unlock()

	c.notify()
	return &out, nil
}

// AddClip 在指定轨道追加片段
// 轨道不存在返回错误；锁定的轨道拒绝编辑
func (c *Core) AddClip(trackID string, in *AddClipInput) (*Clip, error) {
	c.state.mu.Lock()
	track := c.findTrackLocked(trackID)
	if track == nil {
		c.state.mu.Unlock()
		return nil, reason.ErrNotFound.Withf("track[%s] not found", trackID)
	}
	if track.Locked {
		c.state.mu.Unlock()
		return nil, reason.ErrBadRequest.Withf("track[%s] is locked", trackID)
	}

	clip := Clip{
		ID:             uuid.NewString(),
		TrackID:        trackID,
		AssetID:        in.AssetID,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		Duration:       in.Duration,
		TrimStart:      in.TrimStart,
		TrimEnd:        in.TrimEnd,
		Effects:        in.Effects,
		EffectSegments: in.EffectSegments,
		Transition:     in.Transition,
	}
	track.Clips = append(track.Clips, &clip)
	c.state.mu.Unlock()

	c.notify()
	return &clip, nil
}

// RemoveClip 删除片段，片段不存在时为幂等空操作
// 锁定轨道上的片段拒绝删除
func (c *Core) RemoveClip(clipID string) error {
	c.state.mu.Lock()
	track, idx := c.findClipLocked(clipID)
	if track == nil {
		c.state.mu.Unlock()
		return nil
	}
	if track.Locked {
		c.state.mu.Unlock()
		return reason.ErrBadRequest.Withf("track[%s] is locked", track.ID)
	}
	track.Clips = append(track.Clips[:idx], track.Clips[idx+1:]...)
	if c.state.selectedClipID == clipID {
		c.state.selectedClipID = ""
	}
	c.state.mu.Unlock()

	c.notify()
	return nil
}

// EditClip 对片段应用部分补丁
// 不做不变量校验，拖拽过程中的中间态允许暂时非法，由调用方收敛
func (c *Core) EditClip(clipID string, in *EditClipInput) (*Clip, error) {
	c.state.mu.Lock()
	track, idx := c.findClipLocked(clipID)
	if track == nil {
		c.state.mu.Unlock()
		return nil, reason.ErrNotFound.Withf("clip[%s] not found", clipID)
	}
	if track.Locked {
		c.state.mu.Unlock()
		return nil, reason.ErrBadRequest.Withf("track[%s] is locked", track.ID)
	}

	clip := track.Clips[idx]
	if in.StartTime != nil {
		clip.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		clip.EndTime = *in.EndTime
	}
	if in.Duration != nil {
		clip.Duration = *in.Duration
	}
	if in.TrimStart != nil {
		clip.TrimStart = *in.TrimStart
	}
	if in.TrimEnd != nil {
		clip.TrimEnd = *in.TrimEnd
	}
	if in.Effects != nil {
		clip.Effects = in.Effects
	}
	if in.EffectSegments != nil {
		clip.EffectSegments = in.EffectSegments
	}
	if in.Transition != nil {
		clip.Transition = in.Transition
	}
	out := *clip
	c.state.mu.Unlock()

	c.notify()
	return &out, nil
}

// SplitClip 在时间 t 处把片段一分为二
// t 必须严格落在 (startTime, endTime) 内，否则拒绝且不产生任何变更。
// 前半段保留原 id，时长缩短为分割点之前的跨度，尾部裁剪增加被移除的跨度；
// 后半段获得新 id，头部裁剪增加分割点之前的跨度。
// 转场拆分：入场留给前半段，出场留给后半段
func (c *Core) SplitClip(clipID string, t float64) (*Clip, *Clip, error) {
	c.state.mu.Lock()
	track, idx := c.findClipLocked(clipID)
	if track == nil {
		c.state.mu.Unlock()
		return nil, nil, reason.ErrNotFound.Withf("clip[%s] not found", clipID)
	}
	if track.Locked {
		c.state.mu.Unlock()
		return nil, nil, reason.ErrBadRequest.Withf("track[%s] is locked", track.ID)
	}

	clip := track.Clips[idx]
	if t <= clip.StartTime || t >= clip.EndTime {
		c.state.mu.Unlock()
		return nil, nil, reason.ErrBadRequest.Withf("split time %.3f outside clip (%.3f, %.3f)", t, clip.StartTime, clip.EndTime)
	}

	head := t - clip.StartTime
	tail := clip.Duration - head

	second := *clip
	second.ID = uuid.NewString()
	second.StartTime = t
	second.TrimStart = clip.TrimStart + head
	second.EffectSegments = append([]EffectSegment(nil), clip.EffectSegments...)

	clip.EndTime = t
	clip.Duration = head
	clip.TrimEnd += tail

	if orig := clip.Transition; orig != nil {
		clip.Transition = &Transition{In: orig.In, Out: TransitionEdge{Kind: TransitionNone}}
		second.Transition = &Transition{In: TransitionEdge{Kind: TransitionNone}, Out: orig.Out}
	}

	track.Clips = append(track.Clips, nil)
	copy(track.Clips[idx+2:], track.Clips[idx+1:])
	track.Clips[idx+1] = &second

	first := *clip
	c.state.mu.Unlock()

	slog.Debug("clip split", "clip_id", clipID, "at", t, "second_id", second.ID)
	c.notify()
	return &first, &second, nil
}

// DuplicateClip 复制片段，新片段紧随原片段之后（startTime = 原 endTime）
func (c *Core) DuplicateClip(clipID string) (*Clip, error) {
	c.state.mu.Lock()
	track, idx := c.findClipLocked(clipID)
	if track == nil {
		c.state.mu.Unlock()
		return nil, reason.ErrNotFound.Withf("clip[%s] not found", clipID)
	}
	if track.Locked {
		c.state.mu.Unlock()
		return nil, reason.ErrBadRequest.Withf("track[%s] is locked", track.ID)
	}

	clip := track.Clips[idx]
	span := clip.EndTime - clip.StartTime
	dup := *clip
	dup.ID = uuid.NewString()
	dup.StartTime = clip.EndTime
	dup.EndTime = clip.EndTime + span
	dup.EffectSegments = append([]EffectSegment(nil), clip.EffectSegments...)
	track.Clips = append(track.Clips, &dup)
	c.state.mu.Unlock()

	c.notify()
	return &dup, nil
}

// SelectClip 记录当前选中片段，传空字符串取消选择
func (c *Core) SelectClip(clipID string) {
	c.state.mu.Lock()
	c.state.selectedClipID = clipID
	c.state.mu.Unlock()
}

// SelectedClip 返回选中的片段，未选中时返回 nil
func (c *Core) SelectedClip() *Clip {
	c.state.mu.RLock()
	defer c.state.mu.RUnlock()
	if c.state.selectedClipID == "" {
		return nil
	}
	track, idx := c.findClipLocked(c.state.selectedClipID)
	if track == nil {
		return nil
	}
	out := *track.Clips[idx]
	return &out
}

// ActiveClip 某一时刻处于活动状态的片段及其所属轨道
type ActiveClip struct {
	Track *Track
	Clip  *Clip
}

// ActiveClips 返回时间 t 的活动片段集合
// 轨道按 Order 升序（低层先绘制），不可见轨道排除；
// 同一轨道内允许重叠片段，按片段列表顺序依次绘制
func (c *Core) ActiveClips(t float64) []ActiveClip {
	c.state.mu.RLock()
	tracks := c.snapshotLocked()
	c.state.mu.RUnlock()

	sort.SliceStable(tracks, func(i, j int) bool { return tracks[i].Order < tracks[j].Order })

	out := make([]ActiveClip, 0, 4)
	for _, track := range tracks {
		if !track.Visible {
			continue
		}
		for _, clip := range track.Clips {
			if clip.ActiveAt(t) {
				out = append(out, ActiveClip{Track: track, Clip: clip})
			}
		}
	}
	return out
}

// ClipIDs 当前所有片段 id 集合，供句柄池回收比对
func (c *Core) ClipIDs() map[string]struct{} {
	c.state.mu.RLock()
	defer c.state.mu.RUnlock()
	ids := make(map[string]struct{})
	for _, track := range c.state.tracks {
		for _, clip := range track.Clips {
			ids[clip.ID] = struct{}{}
		}
	}
	return ids
}

// Save 保存时间轴快照
func (c *Core) Save(ctx context.Context, projectID string) error {
	if c.store == nil {
		return reason.ErrServer.SetMsg("timeline store not configured")
	}
	if err := c.store.Save(ctx, projectID, c.Tracks()); err != nil {
		return reason.ErrDB.Withf("save timeline project[%s] err[%s]", projectID, err.Error())
	}
	return nil
}

// Load 从快照恢复时间轴，整体替换当前内容
func (c *Core) Load(ctx context.Context, projectID string) error {
	if c.store == nil {
		return reason.ErrServer.SetMsg("timeline store not configured")
	}
	tracks, err := c.store.Load(ctx, projectID)
	if err != nil {
		return reason.ErrDB.Withf("load timeline project[%s] err[%s]", projectID, err.Error())
	}

	c.state.mu.Lock()
	c.state.tracks = tracks
	c.state.selectedClipID = ""
	c.state.mu.Unlock()

	c.notify()
	return nil
}

func (c *Core) findTrackLocked(trackID string) *Track {
	for _, t := range c.state.tracks {
		if t.ID == trackID {
			return t
		}
	}
	return nil
}

func (c *Core) findClipLocked(clipID string) (*Track, int) {
	for _, t := range c.state.tracks {
		for i, clip := range t.Clips {
			if clip.ID == clipID {
				return t, i
			}
		}
	}
	return nil, -1
}
