package asset

import (
	"github.com/ixugo/goddd/pkg/web"
)

type FindAssetInput struct {
	web.PagerFilter
	Kind string `form:"kind"` // video/image/audio
	Name string `form:"name"` // 名称模糊匹配
}

type ImportAssetInput struct {
	Path string `json:"path" binding:"required"` // 素材目录内的文件路径
}
