// Package playback 播放时钟
// 时钟只推进时间，不接触画面；合成器按当前时间取帧
package playback

import (
	"context"
	"sync"
	"time"

	"github.com/ixugo/goddd/pkg/conc"
)

const (
	MinZoom = 0.1
	MaxZoom = 10
)

// Clock 播放头时钟，按真实流逝时间推进
type Clock struct {
	mu       sync.Mutex
	current  float64 // 当前播放头，秒
	duration float64 // 项目总时长，秒
	fps      int
	zoom     float64
	playing  bool
	lastTick time.Time

	now func() time.Time // 测试注入
}

// NewClock 创建暂停状态的时钟
func NewClock(duration float64, fps int) *Clock {
	if fps <= 0 {
		fps = 30
	}
	return &Clock{
		duration: duration,
		fps:      fps,
		zoom:     1,
		now:      time.Now,
	}
}

// Run 启动后台推进，间隔为一帧时长，ctx 取消后停止
func (c *Clock) Run(ctx context.Context) {
	interval := time.Second / time.Duration(c.fps)
	go conc.Timer(ctx, interval, interval, func() {
		c.Tick()
	})
}

// Play 开始播放；播放头已到末尾时不动作
func (c *Clock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing || c.current >= c.duration {
		return
	}
	c.playing = true
	c.lastTick = c.now()
}

// Pause 暂停播放
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = false
}

// Toggle 播放/暂停切换，返回切换后是否在播放
func (c *Clock) Toggle() bool {
	c.mu.Lock()
	playing := c.playing
	c.mu.Unlock()
	if playing {
		c.Pause()
	} else {
		c.Play()
	}
	return !playing
}

// Tick 按上次推进以来的真实流逝时间推进播放头
// 到达末尾时停在 duration 并自动暂停
func (c *Clock) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing {
		return
	}
	now := c.now()
	c.current += now.Sub(c.lastTick).Seconds()
	c.lastTick = now
	if c.current >= c.duration {
		c.current = c.duration
		c.playing = false
	}
}

// Seek 跳转播放头，越界值夹取到 [0, duration]
func (c *Clock) Seek(t float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = clamp(t, 0, c.duration)
	c.lastTick = c.now()
	return c.current
}

// StepFrame 逐帧步进 n 帧（可为负），步进即暂停
func (c *Clock) StepFrame(n int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = false
	c.current = clamp(c.current+float64(n)/float64(c.fps), 0, c.duration)
	return c.current
}

// SetZoom 设置时间轴缩放，夹取到 [0.1, 10]
func (c *Clock) SetZoom(z float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = clamp(z, MinZoom, MaxZoom)
	return c.zoom
}

// SetDuration 项目时长变化时同步时钟上限
func (c *Clock) SetDuration(d float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d < 0 {
		d = 0
	}
	c.duration = d
	if c.current > d {
		c.current = d
		c.playing = false
	}
}

// Current 当前播放头位置
func (c *Clock) Current() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Status 时钟状态快照
type Status struct {
	CurrentTime float64 `json:"current_time"`
	Duration    float64 `json:"duration"`
	FPS         int     `json:"fps"`
	Zoom        float64 `json:"zoom"`
	Playing     bool    `json:"playing"`
}

// Status 返回状态快照
func (c *Clock) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		CurrentTime: c.current,
		Duration:    c.duration,
		FPS:         c.fps,
		Zoom:        c.zoom,
		Playing:     c.playing,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
