package publish

import (
	"context"

	"github.com/ixugo/goddd/domain/uniqueid"
)

// Storer data persistence
type Storer interface {
	Post() PostStorer
}

// Platform 目标平台发布客户端
// 各平台凭据配置缺失时由实现返回错误
type Platform interface {
	Name() string
	Publish(ctx context.Context, post *Post) (remoteID string, err error)
}

// Core business domain
type Core struct {
	store     Storer
	uni       uniqueid.Core
	platforms map[string]Platform
}

type Option func(*Core)

// WithPlatform 注册平台客户端
func WithPlatform(p Platform) Option {
	return func(c *Core) {
		c.platforms[p.Name()] = p
	}
}

// NewCore create business domain
func NewCore(store Storer, uni uniqueid.Core, opts ...Option) *Core {
	c := Core{
		store:     store,
		uni:       uni,
		platforms: make(map[string]Platform),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}
