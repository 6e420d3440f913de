package publish

import (
	"github.com/ixugo/goddd/pkg/web"
)

type FindPostInput struct {
	web.PagerFilter
	Platform string `form:"platform"`
	Status   string `form:"status"` // draft/scheduled/published/failed
}

type CreatePostInput struct {
	Platforms   []string `json:"platforms" binding:"required"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	VideoPath   string   `json:"video_path" binding:"required"`
	ScheduledMs int64    `json:"scheduled_ms"` // 计划发布时间，毫秒时间戳，0 为立即发布
}
