package api

import (
	"github.com/gin-gonic/gin"
	"github.com/ixugo/goddd/pkg/web"
	"github.com/vidit-app/vidit/internal/core/playback"
)

// PlaybackAPI 为 http 提供业务方法
type PlaybackAPI struct {
	clock *playback.Clock
}

func NewPlaybackAPI(clock *playback.Clock) PlaybackAPI {
	return PlaybackAPI{clock: clock}
}

func RegisterPlayback(g gin.IRouter, api PlaybackAPI, handler ...gin.HandlerFunc) {
	group := g.Group("/playback", handler...)
	group.GET("/status", web.WrapH(api.getStatus))
	group.POST("/play", web.WrapH(api.play))
	group.POST("/pause", web.WrapH(api.pause))
	group.POST("/toggle", web.WrapH(api.toggle))
	group.POST("/seek", web.WrapH(api.seek))
	group.POST("/step", web.WrapH(api.stepFrame))
	group.POST("/zoom", web.WrapH(api.setZoom))
}

func (a PlaybackAPI) getStatus(_ *gin.Context, _ *struct{}) (playback.Status, error) {
	return a.clock.Status(), nil
}

func (a PlaybackAPI) play(_ *gin.Context, _ *struct{}) (playback.Status, error) {
	a.clock.Play()
	return a.clock.Status(), nil
}

func (a PlaybackAPI) pause(_ *gin.Context, _ *struct{}) (playback.Status, error) {
	a.clock.Pause()
	return a.clock.Status(), nil
}

func (a PlaybackAPI) toggle(_ *gin.Context, _ *struct{}) (playback.Status, error) {
	a.clock.Toggle()
	return a.clock.Status(), nil
}

type seekInput struct {
	Time float64 `json:"time"`
}

func (a PlaybackAPI) seek(_ *gin.Context, in *seekInput) (playback.Status, error) {
	a.clock.Seek(in.Time)
	return a.clock.Status(), nil
}

type stepFrameInput struct {
	Frames int `json:"frames" binding:"required"`
}

func (a PlaybackAPI) stepFrame(_ *gin.Context, in *stepFrameInput) (playback.Status, error) {
	a.clock.StepFrame(in.Frames)
	return a.clock.Status(), nil
}

type setZoomInput struct {
	Zoom float64 `json:"zoom" binding:"required"`
}

func (a PlaybackAPI) setZoom(_ *gin.Context, in *setZoomInput) (playback.Status, error) {
	a.clock.SetZoom(in.Zoom)
	return a.clock.Status(), nil
}
