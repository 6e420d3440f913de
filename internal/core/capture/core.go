package capture

import (
	"context"
	"image"

	"github.com/ixugo/goddd/domain/uniqueid"
	"github.com/ixugo/goddd/pkg/conc"
	"github.com/vidit-app/vidit/internal/conf"
	"github.com/vidit-app/vidit/internal/core/project"
	"github.com/vidit-app/vidit/pkg/framepipe"
)

// Storer data persistence
type Storer interface {
	Capture() CaptureStorer
}

// FrameSource 帧来源，导出时逐帧调用
type FrameSource interface {
	Composite(ctx context.Context, t float64) (*image.NRGBA, error)
}

// ProjectProvider 项目信息提供者，解耦导出领域与项目领域
type ProjectProvider interface {
	GetProject(ctx context.Context, id string) (*project.Project, error)
}

// FrameSink 编码输出，默认实现为 ffmpeg 管道封装
type FrameSink interface {
	Start() error
	WriteFrame(data []byte) error
	Frames() uint64
	Close() error
}

// MuxerFactory 按参数创建编码器，测试中替换为内存实现
type MuxerFactory func(cfg framepipe.MuxConfig) (FrameSink, error)

// Core business domain
type Core struct {
	store    Storer
	uni      uniqueid.Core
	conf     *conf.Export
	source   FrameSource
	projects ProjectProvider
	newMuxer MuxerFactory

	// running 进行中的导出任务，值为取消函数
	running conc.Map[string, context.CancelFunc]
}

type Option func(*Core)

// WithConfig 注入导出配置
func WithConfig(conf *conf.Export) Option {
	return func(c *Core) {
		c.conf = conf
	}
}

// WithFrameSource 注入帧来源
func WithFrameSource(src FrameSource) Option {
	return func(c *Core) {
		c.source = src
	}
}

// WithProjectProvider 注入项目信息提供者
func WithProjectProvider(p ProjectProvider) Option {
	return func(c *Core) {
		c.projects = p
	}
}

// WithMuxerFactory 注入编码器工厂
func WithMuxerFactory(f MuxerFactory) Option {
	return func(c *Core) {
		c.newMuxer = f
	}
}

// NewCore create business domain
func NewCore(store Storer, uni uniqueid.Core, opts ...Option) *Core {
	c := Core{store: store, uni: uni}
	for _, opt := range opts {
		opt(&c)
	}
	if c.newMuxer == nil {
		c.newMuxer = func(cfg framepipe.MuxConfig) (FrameSink, error) {
			return framepipe.NewMuxer(cfg)
		}
	}
	return &c
}

// IsEnabled 检查是否启用导出（全局开关）
// 使用反转逻辑：Disabled=false 表示启用
func (c *Core) IsEnabled() bool {
	return c.conf != nil && !c.conf.Disabled
}
