package api

import (
	"github.com/gin-gonic/gin"
	"github.com/ixugo/goddd/pkg/web"
	"github.com/vidit-app/vidit/internal/conf"
	"github.com/vidit-app/vidit/internal/core/capture"
)

// CaptureAPI 为 http 提供业务方法
type CaptureAPI struct {
	captureCore *capture.Core
	conf        *conf.Bootstrap
}

func NewCaptureAPI(core *capture.Core, conf *conf.Bootstrap) CaptureAPI {
	return CaptureAPI{captureCore: core, conf: conf}
}

func RegisterCapture(g gin.IRouter, api CaptureAPI, handler ...gin.HandlerFunc) {
	group := g.Group("/captures", handler...)
	group.GET("", web.WrapH(api.findCaptures))
	group.POST("", web.WrapH(api.startCapture))
	group.GET("/:id", web.WrapH(api.getCapture))
	group.POST("/:id/stop", web.WrapH(api.stopCapture))
	group.DELETE("/:id", web.WrapH(api.delCapture))
	group.GET("/projects/:id/index.m3u8", api.getPlaylist)

	// 导出文件静态下载
	if api.conf != nil && api.conf.Export.StorageDir != "" {
		g.Static("/static/exports", api.conf.Export.StorageDir)
	}
}

// findCaptures 分页查询导出记录
func (a CaptureAPI) findCaptures(c *gin.Context, in *capture.FindCaptureInput) (any, error) {
	items, total, err := a.captureCore.FindCaptures(c.Request.Context(), in)
	return gin.H{"items": items, "total": total}, err
}

func (a CaptureAPI) getCapture(c *gin.Context, _ *struct{}) (any, error) {
	return a.captureCore.GetCapture(c.Request.Context(), c.Param("id"))
}

func (a CaptureAPI) startCapture(c *gin.Context, in *capture.StartCaptureInput) (any, error) {
	return a.captureCore.StartCapture(c.Request.Context(), in)
}

func (a CaptureAPI) stopCapture(c *gin.Context, _ *struct{}) (any, error) {
	return a.captureCore.StopCapture(c.Request.Context(), c.Param("id"))
}

func (a CaptureAPI) delCapture(c *gin.Context, _ *struct{}) (any, error) {
	return a.captureCore.DelCapture(c.Request.Context(), c.Param("id"))
}

// getPlaylist 输出项目的 m3u8 导出列表
func (a CaptureAPI) getPlaylist(c *gin.Context) {
	out, err := a.captureCore.Playlist(c.Request.Context(), c.Param("id"), "/static/exports")
	if err != nil {
		web.Fail(c, err)
		return
	}
	c.Data(200, "application/vnd.apple.mpegurl", []byte(out))
}
