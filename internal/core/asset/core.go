package asset

import (
	"context"

	"github.com/ixugo/goddd/domain/uniqueid"
	"github.com/ixugo/goddd/pkg/conc"
	"github.com/vidit-app/vidit/internal/conf"
	"github.com/vidit-app/vidit/pkg/mediainfo"
)

// Storer data persistence
type Storer interface {
	Asset() AssetStorer
}

// Prober 媒体元数据探测，探测失败素材标记为 failed
type Prober interface {
	Probe(ctx context.Context, filePath string) (*mediainfo.Info, error)
	Thumbnail(ctx context.Context, srcPath string, at float64, width uint, outPath string) error
}

// Core business domain
type Core struct {
	store  Storer
	uni    uniqueid.Core
	prober Prober
	conf   *conf.Editor

	// cache 素材缓存，合成器每帧按 id 取素材路径，不走数据库
	cache conc.Map[string, *Asset]
}

type Option func(*Core)

// WithProber 注入元数据探测器
func WithProber(p Prober) Option {
	return func(c *Core) {
		c.prober = p
	}
}

// WithConfig 注入素材目录等配置
func WithConfig(conf *conf.Editor) Option {
	return func(c *Core) {
		c.conf = conf
	}
}

// NewCore create business domain
func NewCore(store Storer, uni uniqueid.Core, opts ...Option) *Core {
	c := Core{store: store, uni: uni}
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}
