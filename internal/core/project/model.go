package project

import (
	"github.com/ixugo/goddd/pkg/orm"
)

// Project 工程，时间轴与导出都挂在项目之下
type Project struct {
	ID          string   `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"notNull;default:''" json:"name"`
	Description string   `gorm:"notNull;default:''" json:"description"`
	Width       int      `gorm:"notNull;default:1920" json:"width"`
	Height      int      `gorm:"notNull;default:1080" json:"height"`
	FPS         int      `gorm:"notNull;default:30" json:"fps"`
	Duration    float64  `gorm:"notNull;default:0" json:"duration"` // 项目总时长，秒
	CreatedAt   orm.Time `json:"created_at"`
	UpdatedAt   orm.Time `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
