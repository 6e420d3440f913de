package capture

import (
	"github.com/ixugo/goddd/pkg/web"
)

type FindCaptureInput struct {
	web.PagerFilter
	ProjectID string `form:"project_id"`
	Status    string `form:"status"` // recording/done/stopped/failed
}

type StartCaptureInput struct {
	ProjectID string `json:"project_id" binding:"required"`
}
