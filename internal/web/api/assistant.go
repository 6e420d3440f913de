package api

import (
	"github.com/gin-gonic/gin"
	"github.com/ixugo/goddd/pkg/reason"
	"github.com/ixugo/goddd/pkg/web"
	"github.com/vidit-app/vidit/internal/conf"
	"github.com/vidit-app/vidit/internal/core/assistant"
)

// AssistantAPI 为 http 提供业务方法
type AssistantAPI struct {
	assistantCore *assistant.Core
}

// NewAssistantAPI 创建助手接口，无持久化依赖
func NewAssistantAPI(cfg *conf.Bootstrap) AssistantAPI {
	return AssistantAPI{assistantCore: assistant.NewCore(&cfg.Assistant)}
}

func RegisterAssistant(g gin.IRouter, api AssistantAPI, handler ...gin.HandlerFunc) {
	group := g.Group("/assistant", handler...)
	group.GET("/status", web.WrapH(api.getStatus))
	group.POST("/chat", web.WrapH(api.chat))
	group.POST("/captions", api.captions)
}

func (a AssistantAPI) getStatus(_ *gin.Context, _ *struct{}) (any, error) {
	return gin.H{"enabled": a.assistantCore.IsEnabled()}, nil
}

func (a AssistantAPI) chat(c *gin.Context, in *assistant.ChatInput) (*assistant.ChatOutput, error) {
	return a.assistantCore.Chat(c.Request.Context(), in)
}

// captions 上传音频生成字幕
func (a AssistantAPI) captions(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		web.Fail(c, reason.ErrBadRequest.SetMsg("缺少上传文件"))
		return
	}
	f, err := file.Open()
	if err != nil {
		web.Fail(c, reason.ErrServer.SetMsg(err.Error()))
		return
	}
	defer f.Close()

	out, err := a.assistantCore.Captions(c.Request.Context(), f, file.Filename, c.PostForm("language"))
	if err != nil {
		web.Fail(c, err)
		return
	}
	c.JSON(200, out)
}
