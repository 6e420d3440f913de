package project

import (
	"github.com/ixugo/goddd/pkg/web"
)

type FindProjectInput struct {
	web.PagerFilter
	Name string `form:"name"` // 名称模糊匹配
}

type AddProjectInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	FPS         int     `json:"fps"`
	Duration    float64 `json:"duration"`
}

type EditProjectInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	FPS         int     `json:"fps"`
	Duration    float64 `json:"duration"`
}
