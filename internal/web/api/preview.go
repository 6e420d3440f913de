package api

import (
	"bytes"
	"image/png"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ixugo/goddd/pkg/reason"
	"github.com/ixugo/goddd/pkg/web"
	"github.com/vidit-app/vidit/internal/core/compositor"
	"github.com/vidit-app/vidit/internal/core/playback"
)

// PreviewAPI 预览画面接口
// 前端轮询当前帧，或指定时间取任意帧
type PreviewAPI struct {
	compositorCore *compositor.Core
	clock          *playback.Clock
}

func NewPreviewAPI(core *compositor.Core, clock *playback.Clock) PreviewAPI {
	return PreviewAPI{compositorCore: core, clock: clock}
}

func RegisterPreview(g gin.IRouter, api PreviewAPI, handler ...gin.HandlerFunc) {
	group := g.Group("/preview", handler...)
	group.GET("/frame", api.getFrame)
}

// getFrame 合成指定时间的一帧，缺省取播放头位置
// 直接输出 png，不走统一 json 包装
func (a PreviewAPI) getFrame(c *gin.Context) {
	t := a.clock.Current()
	if v := c.Query("time"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			web.Fail(c, reason.ErrBadRequest.SetMsg("time 参数无效"))
			return
		}
		t = parsed
	}

	frame, err := a.compositorCore.Composite(c.Request.Context(), t)
	if err != nil {
		web.Fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		web.Fail(c, reason.ErrServer.SetMsg(err.Error()))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(200, "image/png", buf.Bytes())
}
