package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ixugo/goddd/pkg/reason"
	"github.com/ixugo/goddd/pkg/web"
	"github.com/vidit-app/vidit/internal/core/playback"
	"github.com/vidit-app/vidit/internal/core/project"
	"github.com/vidit-app/vidit/internal/core/timeline"
)

// TimelineAPI 为 http 提供业务方法
type TimelineAPI struct {
	timelineCore *timeline.Core
	projects     project.Core
	clock        *playback.Clock
}

func NewTimelineAPI(core *timeline.Core, projects project.Core, clock *playback.Clock) TimelineAPI {
	return TimelineAPI{timelineCore: core, projects: projects, clock: clock}
}

func RegisterTimeline(g gin.IRouter, api TimelineAPI, handler ...gin.HandlerFunc) {
	group := g.Group("/timeline", handler...)
	group.GET("/tracks", web.WrapH(api.getTracks))
	group.POST("/tracks", web.WrapH(api.addTrack))
	group.PUT("/tracks/:id", web.WrapH(api.editTrack))
	group.DELETE("/tracks/:id", web.WrapH(api.removeTrack))

	group.POST("/tracks/:id/clips", web.WrapH(api.addClip))
	group.PUT("/clips/:id", web.WrapH(api.editClip))
	group.DELETE("/clips/:id", web.WrapH(api.removeClip))
	group.POST("/clips/:id/split", web.WrapH(api.splitClip))
	group.POST("/clips/:id/duplicate", web.WrapH(api.duplicateClip))
	group.POST("/clips/:id/select", web.WrapH(api.selectClip))
	group.GET("/active", web.WrapH(api.activeClips))

	group.POST("/projects/:id/save", web.WrapH(api.saveTimeline))
	group.POST("/projects/:id/load", web.WrapH(api.loadTimeline))
}

func (a TimelineAPI) getTracks(_ *gin.Context, _ *struct{}) (any, error) {
	return gin.H{"items": a.timelineCore.Tracks(), "selected": a.timelineCore.SelectedClip()}, nil
}

func (a TimelineAPI) addTrack(_ *gin.Context, in *timeline.AddTrackInput) (any, error) {
	return a.timelineCore.AddTrack(in)
}

func (a TimelineAPI) editTrack(c *gin.Context, in *timeline.EditTrackInput) (any, error) {
	return a.timelineCore.EditTrack(c.Param("id"), in)
}

func (a TimelineAPI) removeTrack(c *gin.Context, _ *struct{}) (any, error) {
	a.timelineCore.RemoveTrack(c.Param("id"))
	return gin.H{"msg": "ok"}, nil
}

func (a TimelineAPI) addClip(c *gin.Context, in *timeline.AddClipInput) (any, error) {
	return a.timelineCore.AddClip(c.Param("id"), in)
}

func (a TimelineAPI) editClip(c *gin.Context, in *timeline.EditClipInput) (any, error) {
	return a.timelineCore.EditClip(c.Param("id"), in)
}

func (a TimelineAPI) removeClip(c *gin.Context, _ *struct{}) (any, error) {
	if err := a.timelineCore.RemoveClip(c.Param("id")); err != nil {
		return nil, err
	}
	return gin.H{"msg": "ok"}, nil
}

func (a TimelineAPI) splitClip(c *gin.Context, in *timeline.SplitClipInput) (any, error) {
	first, second, err := a.timelineCore.SplitClip(c.Param("id"), in.Time)
	if err != nil {
		return nil, err
	}
	return gin.H{"first": first, "second": second}, nil
}

func (a TimelineAPI) duplicateClip(c *gin.Context, _ *struct{}) (any, error) {
	return a.timelineCore.DuplicateClip(c.Param("id"))
}

func (a TimelineAPI) selectClip(c *gin.Context, _ *struct{}) (any, error) {
	a.timelineCore.SelectClip(c.Param("id"))
	return gin.H{"msg": "ok"}, nil
}

// activeClips 查询某时刻的活动片段，调试用
func (a TimelineAPI) activeClips(c *gin.Context, _ *struct{}) (any, error) {
	t, err := strconv.ParseFloat(c.Query("time"), 64)
	if err != nil {
		return nil, reason.ErrBadRequest.SetMsg("time 参数无效")
	}
	items := a.timelineCore.ActiveClips(t)
	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, gin.H{"track_id": item.Track.ID, "clip": item.Clip})
	}
	return gin.H{"items": out}, nil
}

func (a TimelineAPI) saveTimeline(c *gin.Context, _ *struct{}) (any, error) {
	if err := a.timelineCore.Save(c.Request.Context(), c.Param("id")); err != nil {
		return nil, err
	}
	return gin.H{"msg": "ok"}, nil
}

func (a TimelineAPI) loadTimeline(c *gin.Context, _ *struct{}) (any, error) {
	id := c.Param("id")
	if err := a.timelineCore.Load(c.Request.Context(), id); err != nil {
		return nil, err
	}
	// 打开项目时把播放时钟上限对齐到该项目的时长
	if proj, err := a.projects.GetProject(c.Request.Context(), id); err == nil {
		a.clock.SetDuration(proj.Duration)
	}
	return gin.H{"items": a.timelineCore.Tracks()}, nil
}
