package publish

import (
	"context"
	"fmt"
)

// 内置平台名
const (
	PlatformYoutube  = "youtube"
	PlatformTiktok   = "tiktok"
	PlatformBilibili = "bilibili"
)

// LocalPlatform 占位平台实现
// 不对外发请求，发布即成功并返回本地 id；真实平台接入后替换
type LocalPlatform struct {
	name string
}

func NewLocalPlatform(name string) *LocalPlatform {
	return &LocalPlatform{name: name}
}

func (p *LocalPlatform) Name() string {
	return p.name
}

func (p *LocalPlatform) Publish(_ context.Context, post *Post) (string, error) {
	if post.VideoPath == "" {
		return "", fmt.Errorf("video path is empty")
	}
	return "local-" + post.ID, nil
}
