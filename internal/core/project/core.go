package project

import (
	"github.com/ixugo/goddd/domain/uniqueid"
	"github.com/vidit-app/vidit/internal/conf"
)

// Storer data persistence
type Storer interface {
	Project() ProjectStorer
}

// Core business domain
type Core struct {
	store Storer
	uni   uniqueid.Core
	conf  *conf.Editor
}

type Option func(*Core)

// WithConfig 注入编辑器默认参数，新建项目时使用
func WithConfig(conf *conf.Editor) Option {
	return func(c *Core) {
		c.conf = conf
	}
}

// NewCore create business domain
func NewCore(store Storer, uni uniqueid.Core, opts ...Option) Core {
	c := Core{store: store, uni: uni}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
