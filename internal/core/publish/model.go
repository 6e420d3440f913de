package publish

import (
	"github.com/ixugo/goddd/pkg/orm"
)

// 发布状态
const (
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
	StatusPublished = "published"
	StatusFailed    = "failed"
)

// Post 面向单个平台的一次发布
type Post struct {
	ID          string   `gorm:"primaryKey" json:"id"`
	Platform    string   `gorm:"notNull;default:'';index" json:"platform"`
	Title       string   `gorm:"notNull;default:''" json:"title"`
	Description string   `gorm:"notNull;default:''" json:"description"`
	VideoPath   string   `gorm:"notNull;default:''" json:"video_path"`
	Status      string   `gorm:"notNull;default:'draft'" json:"status"`
	RemoteID    string   `gorm:"notNull;default:''" json:"remote_id"` // 平台侧 id
	Error       string   `gorm:"notNull;default:''" json:"error"`
	ScheduledAt orm.Time `json:"scheduled_at"`
	PublishedAt orm.Time `json:"published_at"`
	CreatedAt   orm.Time `json:"created_at"`
	UpdatedAt   orm.Time `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
