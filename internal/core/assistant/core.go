// Package assistant 编辑助手
// 对接 OpenAI 兼容接口，提供剪辑问答与自动字幕
package assistant

import (
	"net/http"
	"time"

	"github.com/vidit-app/vidit/internal/conf"
)

// Core business domain
type Core struct {
	conf   *conf.Assistant
	client *http.Client
}

type Option func(*Core)

// WithHTTPClient 注入 HTTP 客户端，测试中指向本地服务
func WithHTTPClient(client *http.Client) Option {
	return func(c *Core) {
		c.client = client
	}
}

// NewCore create business domain
func NewCore(conf *conf.Assistant, opts ...Option) *Core {
	c := Core{
		conf:   conf,
		client: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// IsEnabled 是否配置了 API Key
func (c *Core) IsEnabled() bool {
	return c.conf != nil && c.conf.APIKey != ""
}
