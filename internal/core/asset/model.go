package asset

import (
	"path/filepath"
	"strings"

	"github.com/ixugo/goddd/pkg/orm"
)

// Kind 素材类型
type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
	KindAudio Kind = "audio"
	KindText  Kind = "text" // 字幕等文本素材
)

// 探测状态
const (
	StatusProbing = "probing" // 元数据探测中
	StatusReady   = "ready"
	StatusFailed  = "failed"
)

// Asset 素材库中的一个媒体文件
type Asset struct {
	ID            string   `gorm:"primaryKey" json:"id"`
	Name          string   `gorm:"notNull;default:''" json:"name"`
	Kind          Kind     `gorm:"notNull;default:''" json:"kind"`
	Path          string   `gorm:"notNull;default:''" json:"path"`
	ThumbnailPath string   `gorm:"notNull;default:''" json:"thumbnail_path"`
	Status        string   `gorm:"notNull;default:'probing'" json:"status"`
	Duration      float64  `gorm:"notNull;default:0" json:"duration"` // 秒，图片为 0
	Width         int      `gorm:"notNull;default:0" json:"width"`
	Height        int      `gorm:"notNull;default:0" json:"height"`
	FPS           float64  `gorm:"notNull;default:0" json:"fps"`
	Size          int64    `gorm:"notNull;default:0" json:"size"` // 字节
	CreatedAt     orm.Time `json:"created_at"`
	UpdatedAt     orm.Time `json:"updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}

// KindFromPath 按扩展名判断素材类型，未知扩展名返回空
func KindFromPath(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mov", ".mkv", ".webm", ".avi", ".ts", ".flv":
		return KindVideo
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp":
		return KindImage
	case ".mp3", ".wav", ".aac", ".flac", ".ogg", ".m4a":
		return KindAudio
	case ".srt", ".vtt", ".ass", ".txt":
		return KindText
	}
	return ""
}
