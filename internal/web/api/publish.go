package api

import (
	"github.com/gin-gonic/gin"
	"github.com/ixugo/goddd/pkg/web"
	"github.com/vidit-app/vidit/internal/core/publish"
)

// PublishAPI 为 http 提供业务方法
type PublishAPI struct {
	publishCore *publish.Core
}

func NewPublishAPI(core *publish.Core) PublishAPI {
	return PublishAPI{publishCore: core}
}

func RegisterPublish(g gin.IRouter, api PublishAPI, handler ...gin.HandlerFunc) {
	group := g.Group("/posts", handler...)
	group.GET("", web.WrapH(api.findPosts))
	group.POST("", web.WrapH(api.createPosts))
	group.DELETE("/:id", web.WrapH(api.delPost))
}

// findPosts 分页查询发布记录
func (a PublishAPI) findPosts(c *gin.Context, in *publish.FindPostInput) (any, error) {
	items, total, err := a.publishCore.FindPosts(c.Request.Context(), in)
	return gin.H{"items": items, "total": total}, err
}

func (a PublishAPI) createPosts(c *gin.Context, in *publish.CreatePostInput) (any, error) {
	items, err := a.publishCore.CreatePosts(c.Request.Context(), in)
	if err != nil {
		return nil, err
	}
	return gin.H{"items": items}, nil
}

func (a PublishAPI) delPost(c *gin.Context, _ *struct{}) (any, error) {
	return a.publishCore.DelPost(c.Request.Context(), c.Param("id"))
}
