package api

import (
	"github.com/gin-gonic/gin"
	"github.com/ixugo/goddd/pkg/web"
	"github.com/vidit-app/vidit/internal/core/playback"
	"github.com/vidit-app/vidit/internal/core/project"
)

// ProjectAPI 为 http 提供业务方法
type ProjectAPI struct {
	projectCore project.Core
	clock       *playback.Clock
}

func NewProjectAPI(core project.Core, clock *playback.Clock) ProjectAPI {
	return ProjectAPI{projectCore: core, clock: clock}
}

func RegisterProject(g gin.IRouter, api ProjectAPI, handler ...gin.HandlerFunc) {
	group := g.Group("/projects", handler...)
	group.GET("", web.WrapH(api.findProjects))
	group.POST("", web.WrapH(api.addProject))
	group.GET("/:id", web.WrapH(api.getProject))
	group.PUT("/:id", web.WrapH(api.editProject))
	group.DELETE("/:id", web.WrapH(api.delProject))
}

// findProjects 分页查询项目列表
func (a ProjectAPI) findProjects(c *gin.Context, in *project.FindProjectInput) (any, error) {
	items, total, err := a.projectCore.FindProjects(c.Request.Context(), in)
	return gin.H{"items": items, "total": total}, err
}

func (a ProjectAPI) getProject(c *gin.Context, _ *struct{}) (any, error) {
	return a.projectCore.GetProject(c.Request.Context(), c.Param("id"))
}

func (a ProjectAPI) addProject(c *gin.Context, in *project.AddProjectInput) (any, error) {
	return a.projectCore.AddProject(c.Request.Context(), in)
}

func (a ProjectAPI) editProject(c *gin.Context, in *project.EditProjectInput) (any, error) {
	out, err := a.projectCore.EditProject(c.Request.Context(), in, c.Param("id"))
	if err != nil {
		return nil, err
	}
	// 项目时长变化后同步播放时钟上限
	a.clock.SetDuration(out.Duration)
	return out, nil
}

func (a ProjectAPI) delProject(c *gin.Context, _ *struct{}) (any, error) {
	return a.projectCore.DelProject(c.Request.Context(), c.Param("id"))
}
