package capture

import (
	"github.com/ixugo/goddd/pkg/orm"
)

// 导出任务状态
const (
	StatusRecording = "recording"
	StatusDone      = "done"
	StatusStopped   = "stopped" // 手动停止，文件保留已写入部分
	StatusFailed    = "failed"
)

// Capture 一次时间轴导出
type Capture struct {
	ID        string   `gorm:"primaryKey" json:"id"`
	ProjectID string   `gorm:"notNull;default:'';index" json:"project_id"`
	Name      string   `gorm:"notNull;default:''" json:"name"` // 输出文件名
	Path      string   `gorm:"notNull;default:''" json:"path"` // 相对 StorageDir 的路径
	Status    string   `gorm:"notNull;default:''" json:"status"`
	StartedAt orm.Time `json:"started_at"`
	EndedAt   orm.Time `json:"ended_at"`
	Duration  float64  `gorm:"notNull;default:0" json:"duration"` // 已导出时长，秒
	Frames    int64    `gorm:"notNull;default:0" json:"frames"`
	Size      int64    `gorm:"notNull;default:0" json:"size"` // 字节
}

func (Capture) TableName() string {
	return "captures"
}
